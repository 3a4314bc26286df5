package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expopass/expopass-api/internal/api/handler/v1/request"
	"github.com/expopass/expopass-api/internal/api/handler/v1/response"
	"github.com/expopass/expopass-api/internal/config"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/pkg/jwthelper"
	"github.com/expopass/expopass-api/internal/service"
)

type AuthService interface {
	SignupStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	LoginStudent(ctx context.Context, email, regNo, password string) (domain.Student, error)
	LoginStaff(ctx context.Context, email, password string) (domain.StaffUser, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSignupStudent godoc
// @Summary      Register a new student and issue their personal QR token
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StudentSignupRequest true "request body"
// @Success      201      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignupStudent(ctx *gin.Context) {
	var req request.StudentSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.SignupStudent(ctx.Request.Context(), domain.Student{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		RegistrationNo: req.RegistrationNo,
		SchoolName:     req.SchoolName,
		Phone:          req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentEmailExists) || errors.Is(err, service.ErrStudentRegNoExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSignupStudent -> h.svc.SignupStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// HandleLoginStudent godoc
// @Summary      Login a student by email or registration number
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StudentLoginRequest true "request body"
// @Success      200      {object}   response.StudentLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLoginStudent(ctx *gin.Context) {
	req := request.StudentLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.LoginStudent(ctx.Request.Context(), req.Email, req.RegistrationNo, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLoginStudent -> h.svc.LoginStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), student.ID, domain.RoleStudent, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLoginStudent -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StudentLoginResponse{
		Token:   token,
		Student: student,
	})
}

// HandleLoginStaff godoc
// @Summary      Login a volunteer or admin
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StaffLoginRequest true "request body"
// @Success      200      {object}   response.StaffLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/staff/login [post]
func (h *AuthHandler) HandleLoginStaff(ctx *gin.Context) {
	req := request.StaffLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.svc.LoginStaff(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLoginStaff -> h.svc.LoginStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), staff.ID, staff.Role, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLoginStaff -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StaffLoginResponse{
		Token: token,
		Staff: staff,
	})
}
