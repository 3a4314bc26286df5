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

type AccessService interface {
	CheckIn(ctx context.Context, studentToken string, gateStallID *uint) (domain.Student, error)
	CheckOut(ctx context.Context, studentToken string) (domain.Student, error)
	CheckHistory(ctx context.Context, studentID uint) ([]domain.CheckEvent, error)
}

// AccessHandler serves the gate endpoints used by volunteers scanning
// student QR codes.
type AccessHandler struct {
	svc AccessService
}

func NewAccessHandler(svc AccessService) *AccessHandler {
	return &AccessHandler{
		svc: svc,
	}
}

// HandleCheckIn godoc
// @Summary      Check a student into the event
// @Description  Scans the student's QR token at the entrance or a stall
// @Description  gate. Rejects students who are already inside.
// @Tags         access
// @Produce      json
// @Param        request   body      request.CheckRequest true "request body"
// @Success      200      {object}   response.CheckResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /access/check-in [post]
func (h *AccessHandler) HandleCheckIn(ctx *gin.Context) {
	var req request.CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.CheckIn(ctx.Request.Context(), req.StudentQRToken, req.StallID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrStallNotFound) && req.StallID != nil:
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", *req.StallID))
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.CheckResponse{
		StudentID:      student.ID,
		FullName:       student.FullName,
		AdmissionState: student.AdmissionState,
	})
}

// HandleCheckOut godoc
// @Summary      Check a student out of the event
// @Tags         access
// @Produce      json
// @Param        request   body      request.CheckRequest true "request body"
// @Success      200      {object}   response.CheckResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /access/check-out [post]
func (h *AccessHandler) HandleCheckOut(ctx *gin.Context) {
	var req request.CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.CheckOut(ctx.Request.Context(), req.StudentQRToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrAlreadyCheckedOut):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCheckOut -> h.svc.CheckOut -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.CheckResponse{
		StudentID:      student.ID,
		FullName:       student.FullName,
		AdmissionState: student.AdmissionState,
	})
}

// HandleCheckHistory godoc
// @Summary      List the authenticated student's check-in/out events
// @Tags         access
// @Produce      json
// @Success      200      {array}    domain.CheckEvent
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/me/checks [get]
func (h *AccessHandler) HandleCheckHistory(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	events, err := h.svc.CheckHistory(ctx.Request.Context(), studentID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckHistory -> h.svc.CheckHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}
