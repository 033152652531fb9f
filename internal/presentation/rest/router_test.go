package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/service"
	"github.com/bibbank/agricredit/internal/infrastructure/messaging"
	"github.com/bibbank/agricredit/internal/infrastructure/persistence/memory"
	"github.com/bibbank/agricredit/internal/presentation/rest"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newRouter(t *testing.T, store rest.Pinger, rps float64, burst int) http.Handler {
	t.Helper()

	logger := testLogger()
	repo := memory.NewAssessmentRepo()
	if store == nil {
		store = repo
	}

	assessments := rest.NewAssessmentHandler(
		usecase.NewAssessFarmerUseCase(repo, messaging.NewLogPublisher(logger), nil, service.NewScoringEngine(), logger),
		usecase.NewGetAssessmentUseCase(repo),
		usecase.NewListFarmerAssessmentsUseCase(repo),
		usecase.NewExportReportUseCase(repo, service.NewReportGenerator()),
		usecase.NewCalculateLoanUseCase(),
		logger,
	)

	return rest.NewRouter(rest.RouterConfig{
		Health:         rest.NewHealthHandler("agricredit", store, logger),
		Assessments:    assessments,
		Metrics:        http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics\n")) }),
		Logger:         logger,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	})
}

const farmerJSON = `{
	"farmer_id": "farmer-http",
	"personal_info": {"first_name": "Ganesh", "surname": "Deshmukh", "experience_years": 12, "farm_size": 6},
	"farming_data": {
		"irrigation_type": "drip",
		"rainfall_dependency": "irrigated",
		"average_yield": 3.5,
		"soil_health_score": 8,
		"weather_risk_management": 7,
		"farm_mechanization": true
	},
	"financial_data": {"seasonal_income": 360000, "expenses_per_month": 12000, "existing_loans": 0, "requested_loan_amount": 200000},
	"community_data": {"cooperative_member": true, "training_programs": 3, "peer_rating": 9}
}`

func do(h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		rec := do(newRouter(t, nil, 0, 0), http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "agricredit", body["service"])
	})

	t.Run("readiness with healthy store", func(t *testing.T) {
		rec := do(newRouter(t, nil, 0, 0), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readiness with failing store", func(t *testing.T) {
		rec := do(newRouter(t, failingPinger{}, 0, 0), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(newRouter(t, nil, 0, 0), http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAssessmentAPI(t *testing.T) {
	router := newRouter(t, nil, 0, 0)

	rec := do(router, http.MethodPost, "/v1/assessments", farmerJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.AssessmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "/v1/assessments/"+created.ID, rec.Header().Get("Location"))
	assert.Equal(t, 100, created.CreditScore.Score)
	assert.Equal(t, "low", created.CreditScore.RiskLevel)
	assert.True(t, created.CreditScore.LoanEligibility.Eligible)

	t.Run("get by id", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/assessments/"+created.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got dto.AssessmentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/assessments/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list by farmer", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/farmers/farmer-http/assessments?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got dto.ListAssessmentsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got.Assessments, 1)
		assert.Equal(t, created.ID, got.Assessments[0].ID)
	})

	t.Run("non-numeric limit is 400", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/farmers/farmer-http/assessments?limit=ten", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("report as text attachment", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/assessments/"+created.ID+"/report?kind=improvement_plan&lang=mr", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "improvement_plan_")
		assert.Contains(t, rec.Body.String(), "शेतकी सुधारणा योजना")
	})

	t.Run("report as json", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/assessments/"+created.ID+"/report", "", "Accept", "application/json")
		require.Equal(t, http.StatusOK, rec.Code)

		var got dto.ReportResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Contains(t, got.Content, "AGRICREDIT SCORE REPORT")
	})

	t.Run("invalid report language is 400", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/v1/assessments/"+created.ID+"/report?lang=de", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAssessmentAPI_BadRequests(t *testing.T) {
	router := newRouter(t, nil, 0, 0)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"farmer_id":`},
		{"unknown field", `{"farmer_id":"f","nickname":"x"}`},
		{"failed validation", strings.Replace(farmerJSON, `"peer_rating": 9`, `"peer_rating": 11`, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/v1/assessments", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCalculateLoanAPI(t *testing.T) {
	router := newRouter(t, nil, 0, 0)

	body, err := json.Marshal(dto.CalculateLoanRequest{Principal: 70_000, AnnualRate: 9, TenureMonths: 18, IncludeSchedule: true})
	require.NoError(t, err)

	rec := do(router, http.MethodPost, "/v1/loans/calculate", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got dto.LoanCalculationResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&got))
	assert.Equal(t, 4172.0, got.EMI)
	assert.Equal(t, 75093.0, got.TotalAmount)
	assert.Len(t, got.Schedule, 18)
}

func TestRateLimit(t *testing.T) {
	router := newRouter(t, nil, 1, 2)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/v1/assessments/a", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/v1/assessments/b", "").Code)

	rec := do(router, http.MethodGet, "/v1/assessments/c", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Probes are not limited.
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", "").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := rest.Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		rest.RecoveryMiddleware(testLogger()),
	)
	rec := do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
