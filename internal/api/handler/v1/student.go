package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expopass/expopass-api/internal/api/handler/v1/request"
	"github.com/expopass/expopass-api/internal/api/handler/v1/response"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/service"
)

type StudentService interface {
	GetStudent(ctx context.Context, id uint) (domain.Student, error)
	UpdateProfile(ctx context.Context, id uint, email, password, phone string) (domain.Student, error)
	QRToken(ctx context.Context, id uint) (string, error)
}

type EngagementService interface {
	ScanStall(ctx context.Context, studentID uint, token string) (domain.ScanResult, error)
	SubmitFeedback(ctx context.Context, studentID, stallID uint, rating int, comment string) (domain.SubmissionReceipt, error)
	VisitHistory(ctx context.Context, studentID uint) (domain.VisitHistory, error)
}

type StudentHandler struct {
	svc        StudentService
	engagement EngagementService
}

func NewStudentHandler(svc StudentService, engagement EngagementService) *StudentHandler {
	return &StudentHandler{
		svc:        svc,
		engagement: engagement,
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated student's profile
// @Tags         students
// @Produce      json
// @Success      200      {object}   domain.Student
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/me [get]
func (h *StudentHandler) HandleGetProfile(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	student, err := h.svc.GetStudent(ctx.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "ID", studentID))

			return
		}

		err = fmt.Errorf("v1.HandleGetProfile -> h.svc.GetStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated student's contact details
// @Tags         students
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/me [patch]
func (h *StudentHandler) HandleUpdateProfile(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.UpdateProfile(ctx.Request.Context(), studentID, req.Email, req.Password, req.Phone)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleGetQRCode godoc
// @Summary      Get the authenticated student's entry QR token
// @Tags         students
// @Produce      json
// @Success      200      {object}   response.QRCodeResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/me/qrcode [get]
func (h *StudentHandler) HandleGetQRCode(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	student, err := h.svc.GetStudent(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetQRCode -> h.svc.GetStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := h.svc.QRToken(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetQRCode -> h.svc.QRToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.QRCodeResponse{
		Token:          token,
		RegistrationNo: student.RegistrationNo,
	})
}

// HandleScanStall godoc
// @Summary      Scan a stall QR token and return its details
// @Description  Requires the student to be checked in. Tells the student
// @Description  whether they already rated this stall.
// @Tags         students
// @Produce      json
// @Param        request   body      request.ScanStallRequest true "request body"
// @Success      200      {object}   domain.ScanResult
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /students/me/scan [post]
func (h *StudentHandler) HandleScanStall(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.ScanStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.engagement.ScanStall(ctx.Request.Context(), studentID, req.StallQRToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNotEligible):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleScanStall -> h.engagement.ScanStall -> %w", err)
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleSubmitFeedback godoc
// @Summary      Submit a rating for a stall
// @Description  One rating per stall per student. A student may hold at
// @Description  most 200 ratings in total.
// @Tags         students
// @Produce      json
// @Param        request   body      request.SubmitFeedbackRequest true "request body"
// @Success      201      {object}   domain.SubmissionReceipt
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /students/me/feedback [post]
func (h *StudentHandler) HandleSubmitFeedback(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	var req request.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	receipt, err := h.engagement.SubmitFeedback(ctx.Request.Context(), studentID, req.StallID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotEligible):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrFeedbackLimit):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrStallNotFound):
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", req.StallID))
		case errors.Is(err, service.ErrDuplicateFeedback):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitFeedback -> h.engagement.SubmitFeedback -> %w", err)
			response.RenderErr(ctx, response.ErrServiceUnavailable(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// HandleVisitHistory godoc
// @Summary      List the stalls the authenticated student has rated
// @Tags         students
// @Produce      json
// @Success      200      {object}   domain.VisitHistory
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/me/visits [get]
func (h *StudentHandler) HandleVisitHistory(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	history, err := h.engagement.VisitHistory(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleVisitHistory -> h.engagement.VisitHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, history)
}
