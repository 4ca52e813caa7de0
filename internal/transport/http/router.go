package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnhub/internal/admin"
	"learnhub/internal/dashboard"
	"learnhub/internal/infrastructure/security"
	"learnhub/internal/middleware"
)

type RouterDeps struct {
	Sessions       *dashboard.Sessions
	Tokens         *security.SessionTokens
	Decorator      *admin.Decorator
	Limiter        *middleware.RateLimiter // nil disables rate limiting
	ToggleLimit    int
	Dashboard      *DashboardHandler
	Admin          *AdminHandler
	MediaDir       string
	AllowedOrigins string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.Default()

	if origins := splitOrigins(d.AllowedOrigins); len(origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = origins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL"}
		config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		r.Use(cors.New(config))
	}

	r.GET("/health", Health(d.Sessions))
	r.Static("/media", d.MediaDir)
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, dashboardPath) })

	toggleLimit := func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		toggleLimit = d.Limiter.Limit("toggle", d.ToggleLimit, time.Minute)
	}

	dash := r.Group("/dashboard")
	dash.Use(middleware.Session(d.Tokens))
	{
		dash.GET("", d.Dashboard.Page)
		dash.GET("/roadmap", d.Dashboard.Roadmap)
		dash.GET("/videos", d.Dashboard.Videos)
		dash.GET("/resources", d.Dashboard.Resources)

		dash.POST("/roadmap/:index/open", d.Dashboard.OpenStep)
		dash.POST("/modal/close", d.Dashboard.CloseModal)
		dash.POST("/modal/dismiss", d.Dashboard.DismissModal)

		dash.POST("/videos/:index/toggle", toggleLimit, d.Dashboard.ToggleVideo)
		dash.GET("/videos/:index/download", d.Dashboard.DownloadVideo)

		dash.POST("/notifications/toggle", d.Dashboard.ToggleNotifications)
		dash.POST("/notifications/dismiss", d.Dashboard.DismissNotifications)
		dash.POST("/notifications/read-all", d.Dashboard.ReadAllNotifications)
		dash.POST("/notifications/:index/read", d.Dashboard.ReadNotification)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Session(d.Tokens))
	{
		api.GET("/dashboard/state", d.Dashboard.State)
	}

	adm := r.Group("/admin")
	adm.Use(middleware.Session(d.Tokens), middleware.AdminChrome(d.Decorator))
	{
		adm.GET("/", d.Admin.Overview)
	}

	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
