package routes

import (
	"net/http"

	"keyword-extraction-service/services"
	"keyword-extraction-service/utils"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes registers the liveness and readiness probes. They are
// deliberately outside the auth gate and the rate limiter.
func SetupHealthRoutes(router *gin.Engine, state *services.State) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	router.GET("/ready", func(c *gin.Context) {
		if state.Ready() {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}

		details := gin.H{"status": string(state.Status())}
		if err := state.LoadError(); err != nil {
			details["error"] = err.Error()
		}
		utils.RespondWithError(c, http.StatusInternalServerError,
			"not_ready", "Application is not ready", details)
	})
}
