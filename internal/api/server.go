package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/expopass/expopass-api/docs"
	v1 "github.com/expopass/expopass-api/internal/api/handler/v1"
	"github.com/expopass/expopass-api/internal/api/middleware"
	"github.com/expopass/expopass-api/internal/config"
	"github.com/expopass/expopass-api/internal/domain"
	"github.com/expopass/expopass-api/internal/repository"
	"github.com/expopass/expopass-api/internal/repository/dao"
	"github.com/expopass/expopass-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	studentHandler := s.initStudentHandler(db)
	accessHandler := s.initAccessHandler(db)
	stallHandler := s.initStallHandler(db)
	rankingHandler := s.initRankingHandler(db)
	adminHandler := s.initAdminHandler(db)
	s.MountHandlers(authHandler, studentHandler, accessHandler, stallHandler, rankingHandler, adminHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	staffRepo := repository.NewStaffRepository(dao.NewStaffDAO(db))
	svc := service.NewAuthService(studentRepo, staffRepo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initStudentHandler(db *gorm.DB) *v1.StudentHandler {
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	feedbackRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	svc := service.NewStudentService(studentRepo)
	engagement := service.NewEngagementService(studentRepo, stallRepo, feedbackRepo)
	handler := v1.NewStudentHandler(svc, engagement)

	return handler
}

func (s *Server) initAccessHandler(db *gorm.DB) *v1.AccessHandler {
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	accessRepo := repository.NewAccessRepository(dao.NewAccessDAO(db))
	svc := service.NewAccessService(studentRepo, stallRepo, accessRepo)
	handler := v1.NewAccessHandler(svc)

	return handler
}

func (s *Server) initStallHandler(db *gorm.DB) *v1.StallHandler {
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	svc := service.NewStallService(stallRepo)
	handler := v1.NewStallHandler(svc)

	return handler
}

func (s *Server) initRankingHandler(db *gorm.DB) *v1.RankingHandler {
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	feedbackRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	accessRepo := repository.NewAccessRepository(dao.NewAccessDAO(db))
	rankingRepo := repository.NewRankingRepository(dao.NewRankingDAO(db))
	svc := service.NewRankingService(stallRepo, feedbackRepo, accessRepo, rankingRepo)
	handler := v1.NewRankingHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	staffRepo := repository.NewStaffRepository(dao.NewStaffDAO(db))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(db))
	stallRepo := repository.NewStallRepository(dao.NewStallDAO(db))
	svc := service.NewAdminService(staffRepo, studentRepo, stallRepo)
	auth := service.NewAuthService(studentRepo, staffRepo)
	handler := v1.NewAdminHandler(svc, auth)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	studentHandler *v1.StudentHandler,
	accessHandler *v1.AccessHandler,
	stallHandler *v1.StallHandler,
	rankingHandler *v1.RankingHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignupStudent)
		auth.POST("/auth/login", authHandler.HandleLoginStudent)
		auth.POST("/auth/staff/login", authHandler.HandleLoginStaff)
	}

	students := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRole(domain.RoleStudent))
	{
		students.GET("/students/me", studentHandler.HandleGetProfile)
		students.PATCH("/students/me", studentHandler.HandleUpdateProfile)
		students.GET("/students/me/qrcode", studentHandler.HandleGetQRCode)
		students.GET("/students/me/checks", accessHandler.HandleCheckHistory)
		students.GET("/students/me/visits", studentHandler.HandleVisitHistory)
		students.POST("/students/me/scan", studentHandler.HandleScanStall)
		students.POST("/students/me/feedback", studentHandler.HandleSubmitFeedback)
	}

	gates := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRole(domain.RoleVolunteer, domain.RoleAdmin))
	{
		gates.POST("/access/check-in", accessHandler.HandleCheckIn)
		gates.POST("/access/check-out", accessHandler.HandleCheckOut)
	}

	staff := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRole(domain.RoleVolunteer, domain.RoleAdmin))
	{
		staff.GET("/staff/me", adminHandler.HandleGetProfile)
	}

	stalls := s.Router.Group(basePath)
	{
		stalls.GET("/stalls", stallHandler.HandleListStalls)
		stalls.GET("/stalls/:stallID", stallHandler.HandleGetStall)
	}

	rankings := s.Router.Group(basePath)
	{
		rankings.GET("/rankings", rankingHandler.HandleGetLeaderboard)
		rankings.GET("/rankings/stalls/:stallID", rankingHandler.HandleGetStallRank)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/stalls", stallHandler.HandleCreateStall)
		admin.POST("/rankings/recompute", rankingHandler.HandleRecompute)
		admin.GET("/admin/stats", adminHandler.HandleGetStats)
		admin.GET("/admin/students", adminHandler.HandleListStudents)
		admin.POST("/admin/volunteers", adminHandler.HandleCreateVolunteer)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ExpoPass API"
	docs.SwaggerInfo.Description = "Event access and stall engagement API for school expos."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
