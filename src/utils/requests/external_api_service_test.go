package requests_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/Deveshu04/expert-succotash/src/utils"
	"github.com/Deveshu04/expert-succotash/src/utils/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalAPIService(t *testing.T) {
	ctx := context.Background()

	t.Run("retries a 500 and returns the eventual success", func(t *testing.T) {
		var attempts int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		resp, err := requests.NewExternalAPIService().Get(ctx, ts.URL, "", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
		assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		var attempts int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		_, err := requests.NewExternalAPIService().Get(ctx, ts.URL, "", nil)
		require.Error(t, err)
		assert.Equal(t, int32(4), atomic.LoadInt32(&attempts))
	})

	t.Run("a 4xx is not retried and maps onto an HTTPError", func(t *testing.T) {
		var attempts int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		_, err := requests.NewExternalAPIService().Get(ctx, ts.URL, "", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))

		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("sends token, params and headers", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			if r.Method == http.MethodGet {
				assert.Equal(t, "v1", r.URL.Query().Get("k1"))
			} else {
				assert.Equal(t, "custom", r.Header.Get("X-Extra"))
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		params := url.Values{}
		params.Set("k1", "v1")
		resp, err := requests.NewExternalAPIService().Get(ctx, ts.URL, "secret", params)
		require.NoError(t, err)
		resp.Body.Close()

		resp, err = requests.NewExternalAPIService().PostWithHeaders(ctx, ts.URL, "secret", map[string]string{"k": "v"}, map[string]string{"X-Extra": "custom"})
		require.NoError(t, err)
		resp.Body.Close()
	})
}
