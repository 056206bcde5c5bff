package jmx

import (
	"context"

	"go.uber.org/zap"

	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// Reader reads attributes and flattens them into scalar sequences.
type Reader struct {
	logger *zap.SugaredLogger
}

func NewReader(logger *zap.SugaredLogger) *Reader {
	return &Reader{logger: logger}
}

// Read returns the flattened value of attribute on bean. A missing bean, a
// missing attribute and any other failure are all logged as a warning and
// reported the same way: ok is false.
func (r *Reader) Read(ctx context.Context, conn Connection, bean, attribute string) (values []models.MetricValue, ok bool) {
	raw, ok := r.ReadRaw(ctx, conn, bean, attribute)
	if !ok {
		return nil, false
	}
	return Flatten(raw), true
}

// ReadRaw is Read without flattening.
func (r *Reader) ReadRaw(ctx context.Context, conn Connection, bean, attribute string) (models.AttributeValue, bool) {
	raw, err := conn.ReadAttribute(ctx, bean, attribute)
	if err != nil {
		r.logger.Warnw("Cannot retrieve bean attribute",
			"bean", bean,
			"attribute", attribute,
			"error", err,
		)
		return models.AttributeValue{}, false
	}
	return raw, true
}

// Flatten turns a raw attribute into an ordered scalar sequence. Composite
// values yield their field values in declaration order, tabular values the
// values of each row in row order; nesting is flattened the same way.
func Flatten(v models.AttributeValue) []models.MetricValue {
	return appendFlat(nil, v)
}

func appendFlat(dst []models.MetricValue, v models.AttributeValue) []models.MetricValue {
	switch v.Kind {
	case models.AttributeComposite:
		for _, f := range v.Fields {
			dst = appendFlat(dst, f.Value)
		}
	case models.AttributeTabular:
		for _, row := range v.Rows {
			dst = appendFlat(dst, row)
		}
	default:
		dst = append(dst, v.Scalar)
	}
	return dst
}
