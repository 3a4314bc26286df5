package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/expopass/expopass-api/internal/api/middleware"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/service"
)

type stubStudentService struct{}

func (stubStudentService) GetStudent(_ context.Context, id uint) (domain.Student, error) {
	return domain.Student{ID: id}, nil
}

func (stubStudentService) UpdateProfile(_ context.Context, id uint, _, _, _ string) (domain.Student, error) {
	return domain.Student{ID: id}, nil
}

func (stubStudentService) QRToken(_ context.Context, _ uint) (string, error) {
	return "token", nil
}

type stubEngagementService struct {
	scanErr   error
	submitErr error
}

func (s stubEngagementService) ScanStall(_ context.Context, _ uint, _ string) (domain.ScanResult, error) {
	if s.scanErr != nil {
		return domain.ScanResult{}, s.scanErr
	}

	return domain.ScanResult{Stall: domain.Stall{ID: 10}}, nil
}

func (s stubEngagementService) SubmitFeedback(_ context.Context, _, stallID uint, rating int, _ string) (domain.SubmissionReceipt, error) {
	if s.submitErr != nil {
		return domain.SubmissionReceipt{}, s.submitErr
	}

	return domain.SubmissionReceipt{Feedback: domain.Feedback{StallID: stallID, Rating: rating}}, nil
}

func (stubEngagementService) VisitHistory(_ context.Context, _ uint) (domain.VisitHistory, error) {
	return domain.VisitHistory{}, nil
}

func studentRouter(engagement EngagementService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewStudentHandler(stubStudentService{}, engagement)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(1))
	})
	router.POST("/students/me/scan", handler.HandleScanStall)
	router.POST("/students/me/feedback", handler.HandleSubmitFeedback)

	return router
}

func doJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHandleScanStall_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		scanErr    error
		wantStatus int
	}{
		{name: "ok", scanErr: nil, wantStatus: http.StatusOK},
		{name: "bad token", scanErr: service.ErrInvalidToken, wantStatus: http.StatusBadRequest},
		{name: "not checked in", scanErr: service.ErrNotEligible, wantStatus: http.StatusForbidden},
		{name: "storage failure", scanErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := studentRouter(stubEngagementService{scanErr: tt.scanErr})

			recorder := doJSON(router, "/students/me/scan", `{"stall_qr_token":"abc"}`)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestHandleSubmitFeedback_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		submitErr  error
		wantStatus int
	}{
		{name: "created", submitErr: nil, wantStatus: http.StatusCreated},
		{name: "not checked in", submitErr: service.ErrNotEligible, wantStatus: http.StatusForbidden},
		{name: "over the limit", submitErr: service.ErrFeedbackLimit, wantStatus: http.StatusForbidden},
		{name: "unknown stall", submitErr: service.ErrStallNotFound, wantStatus: http.StatusNotFound},
		{name: "already rated", submitErr: service.ErrDuplicateFeedback, wantStatus: http.StatusConflict},
		{name: "bad rating", submitErr: service.ErrInvalidRating, wantStatus: http.StatusBadRequest},
		{name: "storage failure", submitErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := studentRouter(stubEngagementService{submitErr: tt.submitErr})

			recorder := doJSON(router, "/students/me/feedback", `{"stall_id":10,"rating":4}`)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
