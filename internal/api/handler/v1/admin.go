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

type AdminService interface {
	GetStaff(ctx context.Context, id uint) (domain.StaffUser, error)
	ListStudents(ctx context.Context, limit, offset int) ([]domain.Student, error)
	Stats(ctx context.Context) (service.EventStats, error)
}

type VolunteerCreator interface {
	CreateVolunteer(ctx context.Context, staff domain.StaffUser) (domain.StaffUser, error)
}

type AdminHandler struct {
	svc  AdminService
	auth VolunteerCreator
}

func NewAdminHandler(svc AdminService, auth VolunteerCreator) *AdminHandler {
	return &AdminHandler{
		svc:  svc,
		auth: auth,
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated staff member's profile
// @Tags         admin
// @Produce      json
// @Success      200      {object}   domain.StaffUser
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /staff/me [get]
func (h *AdminHandler) HandleGetProfile(ctx *gin.Context) {
	staffID, ok := currentUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing identity")))

		return
	}

	staff, err := h.svc.GetStaff(ctx.Request.Context(), staffID)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("staff", "ID", staffID))

			return
		}

		err = fmt.Errorf("v1.HandleGetProfile -> h.svc.GetStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleGetStats godoc
// @Summary      Get event-wide totals
// @Tags         admin
// @Produce      json
// @Success      200      {object}   service.EventStats
// @Failure      500      {object}   response.Err
// @Router       /admin/stats [get]
func (h *AdminHandler) HandleGetStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleListStudents godoc
// @Summary      List registered students
// @Tags         admin
// @Produce      json
// @Param        limit     query      int  false  "page size (default 50)"
// @Param        offset    query      int  false  "page offset"
// @Success      200      {array}    domain.Student
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/students [get]
func (h *AdminHandler) HandleListStudents(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid limit parameter")))

		return
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid offset parameter")))

		return
	}

	students, err := h.svc.ListStudents(ctx.Request.Context(), limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleCreateVolunteer godoc
// @Summary      Create a volunteer account
// @Tags         admin
// @Produce      json
// @Param        request   body      request.CreateVolunteerRequest true "request body"
// @Success      201      {object}   domain.StaffUser
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/volunteers [post]
func (h *AdminHandler) HandleCreateVolunteer(ctx *gin.Context) {
	var req request.CreateVolunteerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.auth.CreateVolunteer(ctx.Request.Context(), domain.StaffUser{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RoleVolunteer,
	})
	if err != nil {
		if errors.Is(err, service.ErrStaffEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateVolunteer -> h.auth.CreateVolunteer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, staff)
}
