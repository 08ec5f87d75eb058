package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/domain"
	customError "github.com/segyhp/dues-engine/pkg/errors"
)

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) MemberStatus(ctx context.Context, memberID string, now time.Time) (*domain.MemberStatus, error) {
	args := m.Called(ctx, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberStatus), args.Error(1)
}

func (m *mockReconciler) Summary(ctx context.Context, scope string, now time.Time) (*domain.Summary, error) {
	args := m.Called(ctx, scope, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *mockReconciler) CollectorSummaries(ctx context.Context, now time.Time) ([]domain.CollectorSummary, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectorSummary), args.Error(1)
}

func (m *mockReconciler) PendingPaymentRequests(ctx context.Context) ([]*domain.PaymentRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRequest), args.Error(1)
}

func (m *mockReconciler) RunAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

func (m *mockReconciler) LatestAudit(ctx context.Context) (*domain.AuditReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

var fixedNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestRouter(svc *mockReconciler) *mux.Router {
	h := NewDashboardHandler(svc, zap.NewNop())
	h.now = func() time.Time { return fixedNow }

	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api/v1").Subrouter())
	return router
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMemberStatusHandler(t *testing.T) {
	days := 3
	tests := []struct {
		name           string
		target         string
		setupMock      func(*mockReconciler)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Success - defaults to current time",
			target: "/api/v1/members/m-1/status",
			setupMock: func(m *mockReconciler) {
				m.On("MemberStatus", mock.Anything, "m-1", fixedNow).Return(&domain.MemberStatus{
					MemberID: "m-1",
					Yearly: domain.Classification{
						State:                 domain.StateCritical,
						DaysUntilDeactivation: &days,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Success - explicit date",
			target: "/api/v1/members/m-1/status?at=2025-03-01",
			setupMock: func(m *mockReconciler) {
				at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
				m.On("MemberStatus", mock.Anything, "m-1", at).Return(&domain.MemberStatus{MemberID: "m-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Success - offset with unencoded plus",
			target: "/api/v1/members/m-1/status?at=2025-01-15T10:00:00+02:00",
			setupMock: func(m *mockReconciler) {
				want := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
				m.On("MemberStatus", mock.Anything, "m-1", mock.MatchedBy(func(at time.Time) bool {
					return at.Equal(want)
				})).Return(&domain.MemberStatus{MemberID: "m-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Success - offset with encoded plus",
			target: "/api/v1/members/m-1/status?at=2025-01-15T10:00:00%2B02:00",
			setupMock: func(m *mockReconciler) {
				want := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
				m.On("MemberStatus", mock.Anything, "m-1", mock.MatchedBy(func(at time.Time) bool {
					return at.Equal(want)
				})).Return(&domain.MemberStatus{MemberID: "m-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - malformed at",
			target:         "/api/v1/members/m-1/status?at=yesterday",
			setupMock:      func(m *mockReconciler) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   customError.ErrCodeInvalidQuery,
		},
		{
			name:   "Failure - member not found",
			target: "/api/v1/members/m-404/status",
			setupMock: func(m *mockReconciler) {
				m.On("MemberStatus", mock.Anything, "m-404", fixedNow).Return(nil, customError.WrapMemberNotFound("m-404"))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   customError.ErrCodeMemberNotFound,
		},
		{
			name:   "Failure - database error",
			target: "/api/v1/members/m-1/status",
			setupMock: func(m *mockReconciler) {
				m.On("MemberStatus", mock.Anything, "m-1", fixedNow).Return(nil, customError.WrapDatabaseError(errors.New("down")))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReconciler{}
			tt.setupMock(svc)

			rec := serve(newTestRouter(svc), http.MethodGet, tt.target)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.expectedCode, body.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMemberStatusHandler_RejectsLongID(t *testing.T) {
	svc := &mockReconciler{}

	rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/members/"+strings.Repeat("x", 65)+"/status")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "MemberStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryHandler(t *testing.T) {
	svc := &mockReconciler{}
	svc.On("Summary", mock.Anything, "Ahmed", fixedNow).Return(&domain.Summary{Scope: "Ahmed", TotalMembers: 4}, nil)

	rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/summary?collector=Ahmed")

	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.Summary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summary))
	assert.Equal(t, "Ahmed", summary.Scope)
	assert.Equal(t, 4, summary.TotalMembers)
}

func TestSummaryHandler_UnknownCollector(t *testing.T) {
	svc := &mockReconciler{}
	svc.On("Summary", mock.Anything, "Nobody", fixedNow).Return(nil, customError.WrapCollectorNotFound("Nobody"))

	rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/summary?collector=Nobody")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, customError.ErrCodeCollectorNotFound, decode(t, rec).Code)
}

func TestCollectorSummariesHandler(t *testing.T) {
	svc := &mockReconciler{}
	at := time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)
	svc.On("CollectorSummaries", mock.Anything, at).Return([]domain.CollectorSummary{
		{CollectorID: "c-1", Name: "Ahmed", Summary: &domain.Summary{Scope: "Ahmed"}},
	}, nil)

	rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/collectors/summary?at=2025-02-01T08:30:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []domain.CollectorSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "c-1", summaries[0].CollectorID)
}

func TestPendingPaymentRequestsHandler(t *testing.T) {
	svc := &mockReconciler{}
	svc.On("PendingPaymentRequests", mock.Anything).Return([]*domain.PaymentRequest{{ID: "p-1", MemberID: "m-1"}}, nil)

	rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/payment-requests/pending")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestRunAuditHandler(t *testing.T) {
	svc := &mockReconciler{}
	svc.On("RunAudit", mock.Anything, fixedNow).Return(&domain.AuditReport{ID: "r-1", Findings: []domain.Finding{}}, nil)

	router := newTestRouter(svc)

	rec := serve(router, http.MethodPost, "/api/v1/audit")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Only POST is routed; a subrouter reports other methods as not found.
	rec = serve(router, http.MethodGet, "/api/v1/audit")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertNumberOfCalls(t, "RunAudit", 1)
}

func TestLatestAuditHandler(t *testing.T) {
	t.Run("no report yet", func(t *testing.T) {
		svc := &mockReconciler{}
		svc.On("LatestAudit", mock.Anything).Return(nil, customError.WrapReportNotFound())

		rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/audit/latest")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, customError.ErrCodeReportNotFound, decode(t, rec).Code)
	})

	t.Run("cache unavailable", func(t *testing.T) {
		svc := &mockReconciler{}
		svc.On("LatestAudit", mock.Anything).Return(nil, customError.WrapCacheError(errors.New("dial tcp")))

		rec := serve(newTestRouter(svc), http.MethodGet, "/api/v1/audit/latest")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
