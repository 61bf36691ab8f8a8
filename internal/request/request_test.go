package request

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/models"
)

func backend(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second)
}

func TestCall_SuccessPassesEnvelopeThrough(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employee/list", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"code":200,"message":"ok","data":[1,2,3]}`)
	})

	env, err := Call[[]int](context.Background(), c, http.MethodGet, "/employee/list", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, []int{1, 2, 3}, env.Data)
}

func TestCall_QueryAndBody(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "7", r.URL.Query().Get("id"))
		var body models.IDRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body.ID)
		_, _ = io.WriteString(w, `{"code":200,"data":null}`)
	})

	_, err := Call[any](context.Background(), c, http.MethodPost, "employee/delete",
		url.Values{"id": {"7"}}, models.IDRequest{ID: 7})
	require.NoError(t, err)
}

func TestCall_ApplicationErrorIgnoresHTTPStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		c := backend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"code":500,"message":"workId already exists","data":null}`)
		})

		_, err := Call[any](context.Background(), c, http.MethodPost, "/employee/add", nil, map[string]string{})
		require.Error(t, err)
		apiErr, ok := AsAPIError(err)
		require.True(t, ok, "status %d", status)
		assert.Equal(t, 500, apiErr.Code)
		assert.Equal(t, "workId already exists", apiErr.Error())
		assert.False(t, IsTransport(err))
	}
}

func TestCall_SuccessEnvelopeOnErrorStatusIsSuccess(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"code":200,"message":"","data":"x"}`)
	})
	env, err := Call[string](context.Background(), c, http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", env.Data)
}

func TestCall_EmptyMessageFallsBack(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":404}`)
	})
	_, err := Call[any](context.Background(), c, http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Error", err.Error())
}

func TestCall_MalformedBodyIsTransportError(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	_, err := Call[any](context.Background(), c, http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, err.Error(), "status 502")
}

func TestCall_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := Call[any](context.Background(), New(base, time.Second), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestCall_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	_, err := Call[any](context.Background(), New(srv.URL, 50*time.Millisecond), http.MethodGet, "/slow", nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestCall_ForwardsRequestID(t *testing.T) {
	c := backend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(logging.RequestIDHeader))
		_, _ = io.WriteString(w, `{"code":200}`)
	})
	ctx := logging.WithRequestID(context.Background(), "req-42")
	_, err := Call[any](ctx, c, http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
}
