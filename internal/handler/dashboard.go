package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/domain"
	customError "github.com/segyhp/dues-engine/pkg/errors"
	"github.com/segyhp/dues-engine/pkg/response"
	"github.com/segyhp/dues-engine/pkg/utils"
)

// Reconciler is the part of the reconciliation service the dashboard serves.
type Reconciler interface {
	MemberStatus(ctx context.Context, memberID string, now time.Time) (*domain.MemberStatus, error)
	Summary(ctx context.Context, scope string, now time.Time) (*domain.Summary, error)
	CollectorSummaries(ctx context.Context, now time.Time) ([]domain.CollectorSummary, error)
	PendingPaymentRequests(ctx context.Context) ([]*domain.PaymentRequest, error)
	RunAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error)
	LatestAudit(ctx context.Context) (*domain.AuditReport, error)
}

type DashboardHandler struct {
	service   Reconciler
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewDashboardHandler(service Reconciler, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type memberQuery struct {
	MemberID string `validate:"required,max=64"`
}

type summaryQuery struct {
	Collector string `validate:"omitempty,max=128"`
}

// RegisterRoutes mounts the dashboard endpoints on r
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/members/{memberId}/status", h.MemberStatus).Methods(http.MethodGet)
	r.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	r.HandleFunc("/collectors/summary", h.CollectorSummaries).Methods(http.MethodGet)
	r.HandleFunc("/payment-requests/pending", h.PendingPaymentRequests).Methods(http.MethodGet)
	r.HandleFunc("/audit", h.RunAudit).Methods(http.MethodPost)
	r.HandleFunc("/audit/latest", h.LatestAudit).Methods(http.MethodGet)
}

// MemberStatus handles GET /members/{memberId}/status
func (h *DashboardHandler) MemberStatus(w http.ResponseWriter, r *http.Request) {
	query := memberQuery{MemberID: mux.Vars(r)["memberId"]}
	if err := h.validator.Struct(query); err != nil {
		response.BadRequest(w, "Invalid member ID", err)
		return
	}

	now, err := h.parseAt(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	status, err := h.service.MemberStatus(r.Context(), query.MemberID, now)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, status)
}

// Summary handles GET /summary?collector=&at=
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query := summaryQuery{Collector: strings.TrimSpace(r.URL.Query().Get("collector"))}
	if err := h.validator.Struct(query); err != nil {
		response.BadRequest(w, "Invalid collector", err)
		return
	}

	now, err := h.parseAt(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), query.Collector, now)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, summary)
}

// CollectorSummaries handles GET /collectors/summary?at=
func (h *DashboardHandler) CollectorSummaries(w http.ResponseWriter, r *http.Request) {
	now, err := h.parseAt(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	summaries, err := h.service.CollectorSummaries(r.Context(), now)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, summaries)
}

// PendingPaymentRequests handles GET /payment-requests/pending
func (h *DashboardHandler) PendingPaymentRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.PendingPaymentRequests(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, requests)
}

// RunAudit handles POST /audit?at=
func (h *DashboardHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	now, err := h.parseAt(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	report, err := h.service.RunAudit(r.Context(), now)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Created(w, report)
}

// LatestAudit handles GET /audit/latest
func (h *DashboardHandler) LatestAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.LatestAudit(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, report)
}

// parseAt reads the evaluation instant from the "at" query parameter,
// defaulting to the current time.
func (h *DashboardHandler) parseAt(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return h.now(), nil
	}

	at, ok := utils.ParseDate(raw)
	if !ok {
		// An unencoded "+" in a zone offset arrives as a space.
		if i := strings.LastIndex(raw, " "); i > 0 {
			at, ok = utils.ParseDate(raw[:i] + "+" + raw[i+1:])
		}
	}
	if !ok {
		return time.Time{}, customError.WrapInvalidQuery("at must be an RFC3339 timestamp or a YYYY-MM-DD date, with + URL-encoded as %2B")
	}
	return at, nil
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if response.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.FromError(w, err)
}
