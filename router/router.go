package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Saran-k-ece/Forensync/config"
	"github.com/Saran-k-ece/Forensync/controllers"
	"github.com/Saran-k-ece/Forensync/middleware"
	"github.com/Saran-k-ece/Forensync/store"
)

func Setup(cfg config.AppConfig, s *store.EvidenceStore) *gin.Engine {
	r := gin.Default()

	// Dashboard runs on a different origin.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/healthz", controllers.Health)
	r.Static("/uploads", cfg.UploadDir)

	evidenceCtl := &controllers.EvidenceController{Store: s, UploadDir: cfg.UploadDir}
	authCtl := &controllers.AuthController{Cfg: cfg}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authCtl.Login)

		ev := v1.Group("/evidence")
		{
			// Hardware ingestion stays open; scanners cannot hold sessions.
			ev.POST("/hardware", evidenceCtl.IngestFromHardware)

			protected := ev.Group("", middleware.RequireSession(cfg.SessionSecret))
			{
				protected.GET("", evidenceCtl.ListEvidence)
				protected.GET("/:id", evidenceCtl.GetEvidence)
				protected.PUT("/:id", evidenceCtl.UpdateEvidence)
				protected.DELETE("/:id", evidenceCtl.DeleteEvidence)
				protected.PATCH("/:id/mark-viewed", evidenceCtl.MarkViewed)
				protected.POST("/:id/images", evidenceCtl.UploadImages)
			}
		}
	}

	return r
}
