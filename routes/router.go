package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/leaguehub/config"
	"github.com/DhavalSuthar-24/leaguehub/internal/auth"
	"github.com/DhavalSuthar-24/leaguehub/internal/changes"
	"github.com/DhavalSuthar-24/leaguehub/internal/event"
	"github.com/DhavalSuthar-24/leaguehub/internal/export"
	"github.com/DhavalSuthar-24/leaguehub/internal/kit"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/playerapi"
	"github.com/DhavalSuthar-24/leaguehub/internal/registration"
	"github.com/DhavalSuthar-24/leaguehub/internal/scout"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

const welcomePage = `<html>
	<head><title>League Hub</title></head>
	<body style="text-align:center; margin-top: 40px;">
		<h1>League Hub API</h1>
		<p><a href="/swagger/index.html">API documentation</a></p>
	</body>
</html>`

func SetupRoutes(cfg *config.Config, st *store.Store, hub *changes.Hub) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(responses.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		responses.ErrorResponse(c, http.StatusNotFound, "No route for "+c.Request.URL.Path)
	})
	r.Use(middleware.WithRequestID(), middleware.WithLogging(), middleware.WithRecovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := user.NewUserRepository(st)
	authService := auth.NewService(users, cfg.JWT.AccessTokenSecret, cfg.JWT.AccessTokenExpiryMinutes)
	playerService := player.NewService(st)
	teamService := team.NewService(st)
	eventService := event.NewService(st)
	matchService := match.NewService(st)
	registrationService := registration.NewService(st)
	kitService := kit.NewService(st)
	scoutService := scout.NewService(st)
	exportService := export.NewService(st)

	notificationService := notification.NewService(st)
	notificationService.HandleMatchRequests(matchService)
	notificationService.HandleInvitations(teamService)

	authMW := middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, st.DB())

	// API routes
	api := r.Group("/api")
	playerapi.Routes(api, playerapi.NewHandler(st))
	auth.RegisterAuthRoutes(api, authService, authMW)
	user.UserRoutes(api, users, authMW)
	player.PlayerRoutes(api, playerService, authMW)
	team.TeamRoutes(api, teamService, authMW)
	event.EventRoutes(api, eventService, authMW)
	match.MatchRoutes(api, matchService, authMW)
	registration.RegistrationRoutes(api, registrationService, authMW)
	kit.KitRoutes(api, kitService, authMW)
	notification.NotificationRoutes(api, notificationService, authMW)
	scout.ScoutRoutes(api, scoutService, authMW)
	export.ExportRoutes(api, exportService, authMW)

	api.GET("/changes/ws", changes.NewHandler(hub, cfg.App.FrontendURL).Stream)

	return r
}
