package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "bigtrip/internal/config"
)

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := intconfig.EnsureDB(env.DBDSN); err != nil {
			respondError(c, http.StatusServiceUnavailable, "db_unavailable", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
