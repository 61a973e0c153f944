package mous

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_IDOnlyTriggersFollowUp(t *testing.T) {
	var byIDCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/random":
			_, _ = w.Write([]byte(`{"id": "abc"}`))
		case "/abc":
			byIDCalls.Add(1)
			_, _ = w.Write([]byte(`{"id": "abc", "text": "full record"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	payload, err := c.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), byIDCalls.Load())

	r := Canonicalize(payload)
	assert.Equal(t, "full record", r.Text)
}

func TestRandom_FullRecordSkipsFollowUp(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"data": {"id": "m-9", "text": "already full"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	payload, err := c.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())

	// The original (wrapped) payload comes back, not the unwrapped view.
	m, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "data")
}

func TestRandom_NoIDIsShapeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something": "else"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Random(context.Background())
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestRandom_BlankIDIsShapeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "   "}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Random(context.Background())
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestFetch_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("e", 1000)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.RandomRaw(context.Background())
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.LessOrEqual(t, len(upErr.Body), 300)
}

func TestFetch_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	_, err := c.RandomRaw(context.Background())
	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
}

func TestFetch_InvalidJSONIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.RandomRaw(context.Background())
	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
}

func TestByID_PathConstruction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/some-id", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "some-id"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ByID(context.Background(), "some-id")
	require.NoError(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "API 503: busy", (&UpstreamError{Status: 503, Body: "busy"}).Error())
	assert.Contains(t, (&ShapeError{Payload: map[string]any{"x": 1}}).Error(), "did not return an id")

	wrapped := errors.New("dial tcp: refused")
	te := &TransportError{Err: wrapped}
	assert.ErrorIs(t, te, wrapped)
}
