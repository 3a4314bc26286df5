package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expopass/expopass-api/internal/api/handler/v1/request"
	"github.com/expopass/expopass-api/internal/api/handler/v1/response"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/service"
)

type StallService interface {
	CreateStall(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	GetStall(ctx context.Context, id uint) (domain.Stall, error)
	GetStalls(ctx context.Context) ([]domain.Stall, error)
}

type StallHandler struct {
	svc StallService
}

func NewStallHandler(svc StallService) *StallHandler {
	return &StallHandler{
		svc: svc,
	}
}

// HandleCreateStall godoc
// @Summary      Register a stall and issue its QR token
// @Tags         stalls
// @Produce      json
// @Param        request   body      request.CreateStallRequest true "request body"
// @Success      201      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stalls [post]
func (h *StallHandler) HandleCreateStall(ctx *gin.Context) {
	var req request.CreateStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stall, err := h.svc.CreateStall(ctx.Request.Context(), domain.Stall{
		StallNumber: req.StallNumber,
		StallName:   req.StallName,
		SchoolName:  req.SchoolName,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		if errors.Is(err, service.ErrStallNumberExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateStall -> h.svc.CreateStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, stall)
}

// HandleGetStall godoc
// @Summary      Get a stall by ID
// @Tags         stalls
// @Produce      json
// @Param        stallID   path       int  true  "stall ID"
// @Success      200      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stalls/{stallID} [get]
func (h *StallHandler) HandleGetStall(ctx *gin.Context) {
	rawID := ctx.Param("stallID")
	stallID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || stallID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid stall ID (%v)", rawID)))

		return
	}

	stall, err := h.svc.GetStall(ctx.Request.Context(), uint(stallID))
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))

			return
		}

		err = fmt.Errorf("v1.HandleGetStall -> h.svc.GetStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stall)
}

// HandleListStalls godoc
// @Summary      List all stalls
// @Tags         stalls
// @Produce      json
// @Success      200      {array}    domain.Stall
// @Failure      500      {object}   response.Err
// @Router       /stalls [get]
func (h *StallHandler) HandleListStalls(ctx *gin.Context) {
	stalls, err := h.svc.GetStalls(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStalls -> h.svc.GetStalls -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stalls)
}
