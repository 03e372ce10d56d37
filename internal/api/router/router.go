package router

import (
	"net/http"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/shelfmark/shelfmark/config"
	"github.com/shelfmark/shelfmark/internal/api/handler"
	"github.com/shelfmark/shelfmark/internal/api/middleware"
)

// Setup builds the gin engine: ambient middleware, the binding-level
// username format check, and the route table.
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.Limiter) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Logger())
	// recovery must sit outside sentrygin: on a panic the deepest defer runs
	// first, so sentrygin captures the event and re-panics for gin.Recovery
	// to turn into the 500
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("shelfmark"))

	registerUsernameTag(cfg.Username)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// unauthenticated, rate limited: live-typing and vanity redirects
	pub := v1.Group("/usernames", middleware.RateLimit(limiter))
	pub.GET("/:username/availability", h.CheckAvailability)
	pub.GET("/:username/redirect", h.ResolveRedirect)

	// guarded reads: anonymous allowed, identity picked up when present
	read := v1.Group("", middleware.OptionalAuth(cfg.Auth.JWTSecret))
	read.GET("/profiles/:username", h.GetProfile)
	read.GET("/items/:id", h.GetItem)
	read.GET("/shelves/:owner_id", h.ListShelf)

	// mutations require the trusted acting-user id
	auth := v1.Group("", middleware.Auth(cfg.Auth.JWTSecret))
	auth.POST("/profiles", h.CreateProfile)
	auth.PUT("/profiles/me/visibility", h.SetVisibility)
	auth.PUT("/profiles/me/username", h.Rename)
	auth.POST("/follows", h.RequestFollow)
	auth.POST("/follows/respond", h.RespondFollow)
	auth.DELETE("/follows", h.RemoveEdge)
	auth.GET("/follows/pending", h.ListPending)
	auth.GET("/follows/following", h.ListFollowing)
	auth.POST("/items", h.AddItem)
	auth.DELETE("/items/:id", h.RemoveItem)

	return r
}

// registerUsernameTag adds a `username` binding tag so malformed names are
// rejected at bind time. The service re-validates with the same policy; this
// only shortens the error path.
func registerUsernameTag(cfg config.UsernameConfig) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	minLen, maxLen := cfg.MinLen, cfg.MaxLen
	if minLen <= 0 {
		minLen = 3
	}
	if maxLen <= 0 {
		maxLen = 24
	}
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		// mirror the service policy on the normalized form so bind-time
		// rejections match InvalidFormat exactly
		s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		if len(s) < minLen || len(s) > maxLen {
			return false
		}
		if s[0] == '_' || s[len(s)-1] == '_' {
			return false
		}
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
				continue
			}
			return false
		}
		return true
	})
}
