// Package jmx implements the transport-independent part of the poller:
// connection lifetime, attribute reads with value flattening, and the
// derivation of tag-sets from object names.
package jmx

import (
	"context"

	"go.uber.org/zap"

	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// Connection queries attributes of a single management endpoint.
type Connection interface {
	// ReadAttribute returns the raw value of attribute on bean.
	ReadAttribute(ctx context.Context, bean, attribute string) (models.AttributeValue, error)

	// Close releases the connection.
	Close() error
}

// Connector opens connections by URL.
type Connector interface {
	Connect(ctx context.Context, url string) (Connection, error)
}

// Open connects to url. Failures are logged and reported as a nil
// connection, which callers treat as "skip this endpoint".
func Open(ctx context.Context, connector Connector, url string, logger *zap.SugaredLogger) Connection {
	conn, err := connector.Connect(ctx, url)
	if err != nil {
		logger.Errorw("Cannot connect to JMX instance", "url", url, "error", err)
		return nil
	}
	return conn
}

// Release closes conn, logging a failed close.
func Release(conn Connection, logger *zap.SugaredLogger) {
	if err := conn.Close(); err != nil {
		logger.Warnw("Cannot close JMX connection", "error", err)
	}
}
