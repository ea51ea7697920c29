package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func attachRoutes(r *gin.Engine, s *Server) {
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  s.cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
		}))
	}

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/posts/:channel/:card/votes", s.votes)
		v1.GET("/pending/count", s.pendingCount)
	}

	admin := v1.Group("/admin")
	admin.Use(JWTMiddleware([]byte(s.cfg.JWTSecret)))
	{
		admin.POST("/bans", s.ban)
		admin.DELETE("/bans/:user", s.unban)
	}
}
