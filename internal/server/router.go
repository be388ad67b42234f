package server

import (
	"fmt"
	"net/http"

	"bbs-manager/internal/config"
	"bbs-manager/internal/handlers"
	"bbs-manager/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionName = "bbs_session"

func NewRouter(cfg *config.Config, log *zap.Logger, auth *handlers.AuthHandler, bbs *handlers.BBSHandler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	r.LoadHTMLGlob("web/templates/*.html")

	store, err := sessionStore(cfg)
	if err != nil {
		return nil, err
	}
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectUser())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	r.GET("/register", auth.ShowRegister)
	r.POST("/register", auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/logout", auth.Logout)
	protected.GET("/dashboard", bbs.Dashboard)
	protected.GET("/bbs", bbs.ListRecords)
	protected.GET("/add", bbs.ShowAdd)
	protected.POST("/add", bbs.Add)
	protected.GET("/edit/:id", bbs.ShowEdit)
	protected.POST("/edit/:id", bbs.Edit)
	protected.POST("/delete/:id", bbs.Delete)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, nil
}

// sessionStore prefers a redis-backed store (sessions referenced server-side,
// the cookie carries only the signed id) and falls back to the signed cookie
// store for single-node setups.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	opts := sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.RedisAddr != "" {
		store, err := redis.NewStore(10, "tcp", cfg.RedisAddr, cfg.RedisPassword, []byte(cfg.SessionSecret))
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		store.Options(opts)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(opts)
	return store, nil
}
