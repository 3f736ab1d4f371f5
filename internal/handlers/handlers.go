package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/middleware"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/service"
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the handlers talk to. Nil members disable the
// features that need them.
type Deps struct {
	Log          zerolog.Logger
	Config       *config.AppConfig
	API          *apiclient.Client
	Auth         *service.AuthService
	Images       service.ImageUploader
	Tasks        service.TaskQueue
	Captcha      CaptchaVerifier
	LoginLimiter middleware.Limiter
	DB           Pinger
	Cache        redis.Cmdable
}

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	api          *apiclient.Client
	auth         *service.AuthService
	images       service.ImageUploader
	tasks        service.TaskQueue
	captcha      CaptchaVerifier
	loginLimiter middleware.Limiter
	db           Pinger
	cache        redis.Cmdable
}

func NewHandlerSet(deps Deps) HandlerSet {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	return HandlerSet{
		log:          deps.Log,
		cfg:          cfg,
		api:          deps.API,
		auth:         deps.Auth,
		images:       deps.Images,
		tasks:        deps.Tasks,
		captcha:      deps.Captcha,
		loginLimiter: deps.LoginLimiter,
		db:           deps.DB,
		cache:        deps.Cache,
	}
}

// Register mounts every route. The session gate has already run by the time
// these handlers see a request.
func (h HandlerSet) Register(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/healthz", h.Health)
	api.POST("/verify-captcha", h.VerifyCaptcha)
	api.GET("/avatar", h.Avatar)

	router.GET("/", h.Landing)

	auth := router.Group("/auth")
	{
		auth.GET("/login", h.LoginPage)
		auth.GET("/register", h.RegisterPage)
		auth.GET("/forgot-password", h.ForgotPasswordPage)
		auth.GET("/reset-password", h.ResetPasswordPage)
		auth.GET("/verify-account", h.VerifyAccountPage)

		auth.POST("/login", middleware.RateLimit(h.loginLimiter, h.log), h.Login)
		auth.POST("/register", middleware.RateLimit(h.loginLimiter, h.log), h.RegisterAccount)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/verify-account", h.VerifyAccount)
		auth.POST("/logout", h.Logout)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard)

		dashboard.GET("/hotels", h.ListHotels)
		dashboard.POST("/hotels", h.CreateHotel)

		users := dashboard.Group("/users", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleManager))
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)

		dashboard.GET("/todos", h.ListTodos)
		dashboard.POST("/todos", h.CreateTodo)
		dashboard.GET("/todos/:todoId", h.GetTodo)
		dashboard.PUT("/todos/:todoId", h.UpdateTodo)
		dashboard.DELETE("/todos/:todoId", h.DeleteTodo)

		dashboard.GET("/profile", h.Profile)
		dashboard.PUT("/profile", h.UpdateProfile)

		dashboard.GET("/sessions", h.ListSessions)
		dashboard.DELETE("/sessions/:deviceId", h.RevokeSession)
	}

	hotel := router.Group("/hotels/:id")
	{
		hotel.GET("", h.HotelHome)
		hotel.GET("/overview", h.HotelOverview)
		hotel.GET("/receptionist", h.Receptionist)
		hotel.GET("/room-categories", h.ListRoomCategories)
		hotel.POST("/room-categories", h.CreateRoomCategory)
		hotel.GET("/rooms", h.ListRooms)
		hotel.POST("/rooms", h.CreateRoom)
		hotel.GET("/inventory", h.ListInventory)
		hotel.POST("/inventory", h.CreateInventoryItem)
		hotel.GET("/inventory-checks", h.ListInventoryChecks)
		hotel.POST("/inventory-checks", h.CreateInventoryCheck)
	}
}
