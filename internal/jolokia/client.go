// Package jolokia implements the jmx.Connector over the Jolokia
// JMX-over-HTTP agent protocol.
package jolokia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	internalerrors "github.com/Schera-ole/jmx-telegraf/internal/errors"
	"github.com/Schera-ole/jmx-telegraf/internal/jmx"
	middlewareinternal "github.com/Schera-ole/jmx-telegraf/internal/middleware"
	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// Config configures the agent client.
type Config struct {
	// Timeout bounds every request; zero means no timeout
	Timeout time.Duration

	Username string
	Password string
}

// Client connects to Jolokia agents.
type Client struct {
	cfg    Config
	logger *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Error is a failure reported by the agent in the response body.
type Error struct {
	Status  int64
	Type    string
	Message string
}

func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("jolokia: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("jolokia: status %d: %s: %s", e.Status, e.Type, e.Message)
}

type readRequest struct {
	Type      string `json:"type"`
	MBean     string `json:"mbean"`
	Attribute string `json:"attribute"`
}

type conn struct {
	url        string
	transport  *http.Transport
	httpClient *http.Client
}

// Connect checks that an agent answers at url and returns a connection
// bound to it. Every connection owns its own transport.
func (c *Client) Connect(ctx context.Context, url string) (jmx.Connection, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	var rt http.RoundTripper = transport
	rt = middlewareinternal.BasicAuth(c.cfg.Username, c.cfg.Password, rt)
	rt = middlewareinternal.LoggingTransport(c.logger, rt)

	cn := &conn{
		url:       strings.TrimRight(url, "/"),
		transport: transport,
		httpClient: &http.Client{
			Timeout:   c.cfg.Timeout,
			Transport: rt,
		},
	}

	res, err := cn.do(ctx, http.MethodGet, cn.url+"/version", nil)
	if err != nil {
		transport.CloseIdleConnections()
		return nil, fmt.Errorf("%w: %s: %w", internalerrors.ErrConnectionFailed, url, err)
	}
	c.logger.Debugw("Connected to agent",
		"url", cn.url,
		"agent", res.Get("value.agent").String(),
		"protocol", res.Get("value.protocol").String(),
	)
	return cn, nil
}

func (c *conn) ReadAttribute(ctx context.Context, bean, attribute string) (models.AttributeValue, error) {
	body, err := json.Marshal(readRequest{Type: "read", MBean: bean, Attribute: attribute})
	if err != nil {
		return models.AttributeValue{}, fmt.Errorf("error creating read request: %w", err)
	}

	res, err := c.do(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return models.AttributeValue{}, fmt.Errorf("%w: %w", internalerrors.ErrValueUnavailable, err)
	}
	return decode(res.Get("value")), nil
}

func (c *conn) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

func (c *conn) do(ctx context.Context, method, url string, body []byte) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("error creating request for %s: %w", url, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("error sending request for %s: %w", url, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("error reading response body: %w", err)
	}

	if !gjson.ValidBytes(data) {
		if response.StatusCode != http.StatusOK {
			return gjson.Result{}, fmt.Errorf("agent returned status %d", response.StatusCode)
		}
		return gjson.Result{}, fmt.Errorf("agent returned invalid json")
	}

	res := gjson.ParseBytes(data)
	status := res.Get("status")
	if !status.Exists() {
		return gjson.Result{}, fmt.Errorf("agent response has no status (http %d)", response.StatusCode)
	}
	if status.Int() != http.StatusOK {
		return gjson.Result{}, &Error{
			Status:  status.Int(),
			Type:    res.Get("error_type").String(),
			Message: res.Get("error").String(),
		}
	}
	return res, nil
}

// decode converts a Jolokia value into an attribute tree. Object members are
// ordered by name, as the items of an open type composite are; the agent
// serializes them in hash order.
func decode(r gjson.Result) models.AttributeValue {
	switch {
	case r.IsObject():
		var fields []models.Field
		r.ForEach(func(key, value gjson.Result) bool {
			fields = append(fields, models.Field{Name: key.String(), Value: decode(value)})
			return true
		})
		slices.SortStableFunc(fields, func(a, b models.Field) int {
			return strings.Compare(a.Name, b.Name)
		})
		return models.CompositeValue(fields...)
	case r.IsArray():
		var rows []models.AttributeValue
		r.ForEach(func(_, value gjson.Result) bool {
			rows = append(rows, decode(value))
			return true
		})
		return models.TabularValue(rows...)
	}

	switch r.Type {
	case gjson.Number:
		return models.ScalarValue(models.Number(r.Raw))
	case gjson.True:
		return models.ScalarValue(models.Bool(true))
	case gjson.False:
		return models.ScalarValue(models.Bool(false))
	case gjson.String:
		return models.ScalarValue(models.String(r.Str))
	default:
		return models.ScalarValue(models.Null())
	}
}
