package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/config"
	"github.com/vinimqsz/projeto-eng-software/internal/api/handler"
	"github.com/vinimqsz/projeto-eng-software/internal/api/middleware"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/pkg/jwt"
	"github.com/vinimqsz/projeto-eng-software/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil; token revocation and login
// throttling are then disabled.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", h.Health.Health)

	// interface values stay nil without redis
	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	planners := middleware.RoleAuth(model.RoleAdmin, model.RoleCoordinator)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login",
			middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow),
			h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			terms := authorized.Group("/terms")
			{
				terms.GET("", h.Term.ListTerms)
				terms.GET("/current", h.Term.GetCurrentTerm)
				terms.GET("/:id", h.Term.GetTerm)
				terms.POST("", adminOnly, h.Term.CreateTerm)
				terms.PUT("/:id", adminOnly, h.Term.UpdateTerm)
				terms.PUT("/:id/activate", adminOnly, h.Term.ActivateTerm)
				terms.DELETE("/:id", adminOnly, h.Term.DeleteTerm)
			}

			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", adminOnly, h.Room.CreateRoom)
				rooms.PUT("/:id", adminOnly, h.Room.UpdateRoom)
				rooms.DELETE("/:id", adminOnly, h.Room.DeleteRoom)
			}

			disciplines := authorized.Group("/disciplines")
			{
				disciplines.GET("", h.Discipline.ListDisciplines)
				disciplines.GET("/:id", h.Discipline.GetDiscipline)
				disciplines.POST("", adminOnly, h.Discipline.CreateDiscipline)
				disciplines.PUT("/:id", adminOnly, h.Discipline.UpdateDiscipline)
				disciplines.DELETE("/:id", adminOnly, h.Discipline.DeleteDiscipline)
			}

			professors := authorized.Group("/professors")
			{
				professors.GET("", h.Professor.ListProfessors)
				professors.GET("/:id", h.Professor.GetProfessor)
				professors.POST("", adminOnly, h.Professor.CreateProfessor)
				professors.PUT("/:id", adminOnly, h.Professor.UpdateProfessor)
				professors.DELETE("/:id", adminOnly, h.Professor.DeleteProfessor)
			}

			// coordinators plan the timetable; secretaries only read it
			bookings := authorized.Group("/bookings")
			{
				bookings.GET("", h.Booking.ListBookings)
				bookings.POST("/check", h.Booking.CheckBooking)
				bookings.GET("/:id", h.Booking.GetBooking)
				bookings.POST("", planners, h.Booking.CreateBooking)
				bookings.PUT("/:id", planners, h.Booking.UpdateBooking)
				bookings.DELETE("/:id", planners, h.Booking.DeleteBooking)
			}

			export := authorized.Group("/export/terms/:id")
			{
				export.GET("/timetable.xlsx", h.Export.ExportTimetable)
				export.GET("/rooms/:room_id/calendar.ics", h.Export.ExportRoomCalendar)
			}
		}
	}

	return r
}
