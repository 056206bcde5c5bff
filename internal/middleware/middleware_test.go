package middlewareinternal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingTransport(t *testing.T) {
	// Create a test agent that returns a simple response
	router := chi.NewRouter()
	router.Get("/jolokia/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200}`))
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := &http.Client{Transport: LoggingTransport(zap.New(core).Sugar(), nil)}

	resp, err := client.Get(ts.URL + "/jolokia/version")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("agent request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, ts.URL+"/jolokia/version", fields["uri"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestLoggingTransport_RedactsPassword(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	client := &http.Client{Transport: LoggingTransport(zap.New(core).Sugar(), nil)}

	url := strings.Replace(ts.URL, "http://", "http://monitor:secret@", 1) + "/jolokia"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("agent request").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap()["uri"], "secret")
}

func TestLoggingTransport_Error(t *testing.T) {
	failing := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	core, logs := observer.New(zapcore.DebugLevel)
	client := &http.Client{Transport: LoggingTransport(zap.New(core).Sugar(), failing)}

	_, err := client.Get("http://127.0.0.1:1/jolokia/version")
	assert.Error(t, err)
	assert.Len(t, logs.FilterMessage("agent request failed").All(), 1)
}

func TestBasicAuth(t *testing.T) {
	var user, pass string
	var ok bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
	}))
	defer ts.Close()

	client := &http.Client{Transport: BasicAuth("monitor", "secret", http.DefaultTransport)}
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, ok)
	assert.Equal(t, "monitor", user)
	assert.Equal(t, "secret", pass)
}

func TestBasicAuth_Disabled(t *testing.T) {
	assert.Equal(t, http.DefaultTransport, BasicAuth("", "", http.DefaultTransport))
}
