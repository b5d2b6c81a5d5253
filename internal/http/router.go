package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/view"
)

func NewRouter(handler *Handler, env string, allowedOrigins []string) (*gin.Engine, error) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := view.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(handler.log),
		middleware.RequestLogger(handler.log),
	)
	router.SetHTMLTemplate(templates)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.Session(handler.sessions, handler.registry, handler.log)
	protected := router.Group("/")
	protected.Use(auth)

	api := router.Group("/api")
	if len(allowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Accept", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	api.Use(auth)

	handler.Register(router, protected, api)
	return router, nil
}
