package httpapi

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/calculations"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/internal/gate"
	"github.com/noel97chan-creator/IFRS16calculator/internal/leadcapture"
	"github.com/noel97chan-creator/IFRS16calculator/internal/repository"
	"github.com/noel97chan-creator/IFRS16calculator/internal/tools"
)

type stubSubmitter struct {
	err error
}

func (s stubSubmitter) Submit(context.Context, string) error { return s.err }

func newTestRouter(t *testing.T, submitErr error) (http.Handler, *gate.Issuer) {
	t.Helper()

	cfg, _ := config.LoadConfig()
	issuer := gate.NewIssuer("test-secret", time.Hour)
	leads := leadcapture.NewService(stubSubmitter{err: submitErr}, repository.NewLeadRepositoryMemory(), issuer, zap.NewNop())
	limiter := NewRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Deps{
		Tools:       tools.Registry(cfg, noop.NewTracerProvider().Tracer("test")),
		Leads:       leads,
		Tokens:      issuer,
		LeadLimiter: limiter,
		Logger:      zap.NewNop(),
	}), issuer
}

const scheduleBody = `{"payment": 1000, "term_periods": 12, "annual_rate_percent": 6, "timing": "end"}`

func TestSchedule_OK(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule", strings.NewReader(scheduleBody)))

	require.Equal(t, http.StatusOK, w.Code)

	var s calculations.Schedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Len(t, s.Rows, 12)
	assert.InDelta(t, 11618.93, s.Summary.PresentValue, 0.01)
	assert.Equal(t, 0.0, s.Rows[11].ClosingBalance)
}

func TestSchedule_ValidationError(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	body := `{"payment": -5, "term_periods": 12, "annual_rate_percent": 6, "timing": "end"}`
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "payment", resp.Field)
	assert.Equal(t, "payment: must be greater than 0", resp.Error)
}

func TestSchedule_BadJSON(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule", strings.NewReader(`{invalid-json}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedule_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/schedule", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCompare_OK(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	body := `{"payment": 1000, "term_periods": 12, "annual_rate_percent": 6}`
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule/compare", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)

	var c calculations.TimingComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.InDelta(t, 58.09, c.PresentValueDifference, 0.01)
}

func TestNamedTool_Unknown(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/tools/deposit_schedule", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNamedTool_LeaseSchedule(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/tools/lease_schedule", strings.NewReader(scheduleBody)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeads_FormUnlocksExport(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	form := url.Values{"email": {"cfo@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var token gate.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.Value)

	req = httptest.NewRequest(http.MethodPost, "/v1/schedule/export?format=csv", strings.NewReader(scheduleBody))
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "IFRS16_Schedule.csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 13)
	assert.Equal(t, "Amortization/Depreciation", records[0][5])
}

func TestLeads_JSON(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"email":"cfo@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeads_InvalidEmail(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeads_UpstreamFailure(t *testing.T) {
	router, _ := newTestRouter(t, errors.New("upstream down"))

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"email":"cfo@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLeads_RateLimited(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"email":"cfo@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429}, codes)
}

func TestExport_Locked(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule/export", strings.NewReader(scheduleBody)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExport_PDF(t *testing.T) {
	router, issuer := newTestRouter(t, nil)
	token, err := issuer.Issue("cfo@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/schedule/export?format=pdf", strings.NewReader(scheduleBody))
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	router, issuer := newTestRouter(t, nil)
	token, err := issuer.Issue("cfo@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/schedule/export?format=xlsx", strings.NewReader(scheduleBody))
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/schedule", strings.NewReader(scheduleBody)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tool_calls_total")
}

func TestLeads_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"email":"cfo@example.com"}`))
		req.RemoteAddr = "203.0.113.7:51000"
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429, 429}, codes)
}
