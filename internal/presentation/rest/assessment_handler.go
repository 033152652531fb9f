package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/port"
)

const maxBodyBytes = 1 << 20

// AssessmentHandler exposes the assessment API over HTTP.
type AssessmentHandler struct {
	assess        *usecase.AssessFarmerUseCase
	getAssessment *usecase.GetAssessmentUseCase
	list          *usecase.ListFarmerAssessmentsUseCase
	export        *usecase.ExportReportUseCase
	calculate     *usecase.CalculateLoanUseCase
	logger        *slog.Logger
}

func NewAssessmentHandler(
	assess *usecase.AssessFarmerUseCase,
	getAssessment *usecase.GetAssessmentUseCase,
	list *usecase.ListFarmerAssessmentsUseCase,
	export *usecase.ExportReportUseCase,
	calculate *usecase.CalculateLoanUseCase,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assess:        assess,
		getAssessment: getAssessment,
		list:          list,
		export:        export,
		calculate:     calculate,
		logger:        logger,
	}
}

// RegisterRoutes attaches the v1 API routes to mux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assessments", h.createAssessment)
	mux.HandleFunc("GET /v1/assessments/{id}", h.getAssessmentByID)
	mux.HandleFunc("GET /v1/assessments/{id}/report", h.exportReport)
	mux.HandleFunc("GET /v1/farmers/{id}/assessments", h.listFarmerAssessments)
	mux.HandleFunc("POST /v1/loans/calculate", h.calculateLoan)
}

func (h *AssessmentHandler) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessFarmerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.assess.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/assessments/"+resp.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AssessmentHandler) getAssessmentByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{AssessmentID: r.PathValue("id")})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AssessmentHandler) listFarmerAssessments(w http.ResponseWriter, r *http.Request) {
	req := dto.ListFarmerAssessmentsRequest{FarmerID: r.PathValue("id")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.list.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// exportReport returns the report as a text attachment, or as JSON when the
// client asks for application/json.
func (h *AssessmentHandler) exportReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.export.Execute(r.Context(), dto.ExportReportRequest{
		AssessmentID: r.PathValue("id"),
		Kind:         q.Get("kind"),
		Language:     q.Get("lang"),
	})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Accept")); mt == "application/json" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": resp.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, resp.Content)
}

func (h *AssessmentHandler) calculateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateLoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.calculate.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AssessmentHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dto.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
