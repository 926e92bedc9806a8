package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/brandctx"
	brandhttp "github.com/fwojciec/brandctx/http"
	"github.com/fwojciec/brandctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(analyzer brandctx.Analyzer, insights brandctx.InsightService) *brandhttp.Server {
	s := brandhttp.NewServer()
	s.Analyzer = analyzer
	s.Insights = insights
	s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestServer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("returns the brand context", func(t *testing.T) {
		t.Parallel()

		bc := brandctx.NewBrandContext()
		bc.PrivacyPolicy = brandctx.String("We respect your privacy.")
		var gotURL string
		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, websiteURL string) (*brandctx.Insight, error) {
				gotURL = websiteURL
				return &brandctx.Insight{WebsiteURL: websiteURL, Context: bc}, nil
			},
		}

		rec := do(t, newTestServer(analyzer, nil).Handler(), http.MethodPost, "/shopify-insights", `{"website_url":"https://shop.test"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://shop.test", gotURL)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "We respect your privacy.", body["privacy_policy"])
		assert.Equal(t, []any{}, body["product_catalog"])
		assert.Nil(t, body["brand_text_context"])
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newTestServer(&mock.Analyzer{}, nil).Handler(), http.MethodPost, "/shopify-insights", `{`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", detail(t, rec))
	})

	t.Run("rejects invalid website URL", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newTestServer(&mock.Analyzer{}, nil).Handler(), http.MethodPost, "/shopify-insights", `{"website_url":"shop.test"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", brandctx.Errorf(brandctx.EINVALID, "bad url"), http.StatusBadRequest},
		{"unavailable", brandctx.Errorf(brandctx.EUNAVAILABLE, "refused"), http.StatusUnauthorized},
		{"timeout", brandctx.Errorf(brandctx.ETIMEOUT, "slow"), http.StatusGatewayTimeout},
		{"upstream", brandctx.UpstreamErrorf(http.StatusForbidden, "403 Forbidden"), http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run("maps "+tt.name+" errors", func(t *testing.T) {
			t.Parallel()

			analyzer := &mock.Analyzer{
				AnalyzeFn: func(_ context.Context, _ string) (*brandctx.Insight, error) {
					return nil, tt.err
				},
			}

			rec := do(t, newTestServer(analyzer, nil).Handler(), http.MethodPost, "/shopify-insights", `{"website_url":"https://shop.test"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, brandctx.ErrorMessage(tt.err), detail(t, rec))
		})
	}

	t.Run("allows cross-origin requests", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/shopify-insights", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		newTestServer(&mock.Analyzer{}, nil).Handler().ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestServer_Insights(t *testing.T) {
	t.Parallel()

	t.Run("lists insights with filter", func(t *testing.T) {
		t.Parallel()

		var got brandctx.InsightFilter
		insights := &mock.InsightService{
			FindInsightsFn: func(_ context.Context, filter brandctx.InsightFilter) ([]*brandctx.Insight, error) {
				got = filter
				return []*brandctx.Insight{{ID: "a", WebsiteURL: "https://shop.test", Context: brandctx.NewBrandContext()}}, nil
			},
		}

		rec := do(t, newTestServer(&mock.Analyzer{}, insights).Handler(), http.MethodGet, "/insights?website_url=https://shop.test&limit=500&offset=2", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.WebsiteURL)
		assert.Equal(t, "https://shop.test", *got.WebsiteURL)
		assert.Equal(t, brandhttp.MaxListLimit, got.Limit)
		assert.Equal(t, 2, got.Offset)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "a", body[0]["id"])
	})

	t.Run("rejects bad pagination", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newTestServer(&mock.Analyzer{}, &mock.InsightService{}).Handler(), http.MethodGet, "/insights?limit=zero", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns empty list rather than null", func(t *testing.T) {
		t.Parallel()

		insights := &mock.InsightService{
			FindInsightsFn: func(_ context.Context, _ brandctx.InsightFilter) ([]*brandctx.Insight, error) {
				return nil, nil
			},
		}

		rec := do(t, newTestServer(&mock.Analyzer{}, insights).Handler(), http.MethodGet, "/insights", "")

		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("gets one insight", func(t *testing.T) {
		t.Parallel()

		insights := &mock.InsightService{
			FindInsightByIDFn: func(_ context.Context, id string) (*brandctx.Insight, error) {
				return &brandctx.Insight{ID: id, WebsiteURL: "https://shop.test", Context: brandctx.NewBrandContext()}, nil
			},
		}

		rec := do(t, newTestServer(&mock.Analyzer{}, insights).Handler(), http.MethodGet, "/insights/abc", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"abc"`)
	})

	t.Run("returns 404 for unknown insight", func(t *testing.T) {
		t.Parallel()

		insights := &mock.InsightService{
			FindInsightByIDFn: func(_ context.Context, _ string) (*brandctx.Insight, error) {
				return nil, brandctx.Errorf(brandctx.ENOTFOUND, "insight not found")
			},
		}

		rec := do(t, newTestServer(&mock.Analyzer{}, insights).Handler(), http.MethodGet, "/insights/missing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "insight not found", detail(t, rec))
	})

	t.Run("history routes are absent without a store", func(t *testing.T) {
		t.Parallel()

		rec := do(t, newTestServer(&mock.Analyzer{}, nil).Handler(), http.MethodGet, "/insights", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	s := newTestServer(&mock.Analyzer{}, nil)
	s.Addr = "127.0.0.1:0"
	s.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	s.Metrics = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})

	require.NoError(t, s.Open())
	t.Cleanup(func() { _ = s.Close() })

	resp, err := http.Get(s.URL() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, err = http.Get(s.URL() + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "metrics", string(body))

	require.NoError(t, s.Close())
	assert.Contains(t, logs.String(), "path=/healthz")
}

func TestServer_Open_RequiresAnalyzer(t *testing.T) {
	t.Parallel()

	err := brandhttp.NewServer().Open()

	assert.Equal(t, brandctx.EINVALID, brandctx.ErrorCode(err))
}
