package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "interno-chat/internal/app"
	"interno-chat/internal/bootstrap"
	"interno-chat/internal/pkg/logger"
	"interno-chat/internal/pkg/metrics"
	"interno-chat/internal/repository"
	"interno-chat/internal/transport/http/handler"
	"interno-chat/internal/transport/http/middleware"
)

type engineConfig struct {
	logger         *logger.Logger
	metrics        *metrics.Metrics
	jwtSecret      string
	allowedOrigins []string
}

type handlers struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	chat     *handler.ChatHandler
	message  *handler.MessageHandler
	favorite *handler.FavoriteHandler
	rating   *handler.RatingHandler
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	userRepo := repository.NewUserRepository(app.MySQL)
	chatRepo := repository.NewChatRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	favoriteRepo := repository.NewFavoriteRepository(app.MySQL)
	ratingRepo := repository.NewRatingRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	chatService := appsvc.NewChatService(chatRepo, messageRepo, app.MessageCache)
	favoriteService := appsvc.NewFavoriteService(favoriteRepo)
	ratingService := appsvc.NewRatingService(messageRepo, ratingRepo, app.Config.Rating.Min, app.Config.Rating.Max)

	return newEngine(engineConfig{
		logger:         app.Logger,
		metrics:        app.Metrics,
		jwtSecret:      app.Config.Auth.JWTSecret,
		allowedOrigins: app.Config.App.AllowedOrigins,
	}, handlers{
		health:   handler.NewHealthHandler(app),
		auth:     handler.NewAuthHandler(authService),
		chat:     handler.NewChatHandler(chatService),
		message:  handler.NewMessageHandler(app.NewMessageService()),
		favorite: handler.NewFavoriteHandler(favoriteService),
		rating:   handler.NewRatingHandler(ratingService),
	})
}

func newEngine(cfg engineConfig, h handlers) *gin.Engine {
	router := gin.New()
	router.Use(logger.Middleware(cfg.logger), gin.Recovery(), middleware.CORS(cfg.allowedOrigins))
	if cfg.metrics != nil {
		router.Use(cfg.metrics.Middleware())
		router.GET("/metrics", cfg.metrics.Handler())
	}

	router.GET("/healthz", h.health.Check)
	router.POST("/login", h.auth.Login)

	chats := router.Group("/chats")
	chats.POST("", h.chat.CreateChat)
	chats.GET("/:id", h.chat.ListConversations)
	chats.GET("/:id/messages", h.chat.GetMessages)
	chats.POST("/:id/update-title", h.chat.UpdateTitle)
	chats.DELETE("/:id", h.chat.DeleteChat)

	storage := router.Group("/storage/messages")
	storage.POST("", h.message.Create)
	storage.POST("/async", h.message.Enqueue)
	storage.GET("/conversation/:conversation_id", h.message.ListByConversation)

	router.GET("/messages/conversation/:conversation_id", h.message.FindByConversation)

	authRequired := middleware.AuthJWT(cfg.jwtSecret)

	favorites := router.Group("/favorites", authRequired)
	favorites.POST("", h.favorite.Create)
	favorites.GET("", h.favorite.List)
	favorites.GET("/me", h.favorite.ListMine)
	favorites.GET("/conversation/:conversation_id", h.favorite.GetByConversation)
	favorites.PUT("/:id", h.favorite.Update)
	favorites.PATCH("/:id", h.favorite.Update)
	favorites.POST("/:id/use", h.favorite.Use)
	favorites.DELETE("/:id", h.favorite.Delete)

	auth := router.Group("/auth", authRequired)
	auth.GET("/me", h.auth.Me)
	auth.POST("/change-password", h.auth.ChangePassword)
	auth.POST("/logout", h.auth.Logout)
	auth.POST("/message_rating/", h.rating.Rate)
	auth.GET("/message_rating/:message_id", h.rating.Get)

	return router
}
