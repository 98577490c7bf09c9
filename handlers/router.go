package handlers

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"invoiceqa/logging"
)

// Router builds the gin engine with CORS restricted to allowedOrigins.
func (h *Handlers) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(h.logger), gin.Recovery())

	r.Use(cors.New(h.corsConfig(allowedOrigins)))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", h.HealthHandler)
	r.GET("/ready", h.ReadyHandler)
	r.POST("/query", h.QueryHandler)
	r.GET("/query/history", h.HistoryHandler)

	return r
}

// corsConfig accepts "*" as allow-all and drops origins without an http(s)
// scheme, which gin-contrib/cors refuses at startup.
func (h *Handlers) corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}

	for _, o := range origins {
		switch {
		case o == "*":
			cfg.AllowAllOrigins = true
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		default:
			h.logger.Warn("ignoring CORS origin without http(s) scheme", zap.String("origin", o))
		}
	}

	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowOrigins = nil
	}
	return cfg
}
