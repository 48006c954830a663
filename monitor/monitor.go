package monitor

import (
	"runtime"
	"time"

	"editorial-management-api/config"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorRoutes exposes a lightweight server status endpoint.
func RegisterMonitorRoutes(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		dbStatus := "ok"
		if config.DB == nil {
			dbStatus = "not connected"
		} else if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unreachable"
		}

		c.JSON(200, gin.H{
			"status":     "ok",
			"uptime":     time.Since(startedAt).Round(time.Second).String(),
			"goroutines": runtime.NumGoroutine(),
			"database":   dbStatus,
		})
	})
}
