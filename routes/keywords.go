package routes

import (
	"context"
	"errors"
	"net/http"

	"keyword-extraction-service/internal/config"
	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/internal/telemetry"
	"keyword-extraction-service/middleware"
	"keyword-extraction-service/models"
	"keyword-extraction-service/services"
	"keyword-extraction-service/utils"

	"github.com/gin-gonic/gin"
)

// SetupKeywordRoutes registers the extraction, search and reload
// endpoints. All of them sit behind the auth gate; the health probes in
// health.go do not.
func SetupKeywordRoutes(router *gin.Engine, cfg *config.Config, state *services.State, extractor *services.Extractor, metrics *telemetry.Metrics, authMiddleware *middleware.AuthMiddleware) {
	protected := router.Group("/")
	protected.Use(authMiddleware.RequireAuth())

	protected.POST("/extract-keyword", func(c *gin.Context) {
		var req models.ExtractionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithValidationError(c, "jobContent is required", gin.H{"error": err.Error()})
			return
		}

		logger.Info("Extracting keywords", "request_id", middleware.GetRequestID(c))

		keywords, err := extractor.Extract(c.Request.Context(), *req.JobContent)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// Client went away mid-match; nothing to report back.
				c.Abort()
				return
			}
			logger.Error("Error while extracting keywords", "error", err)
			utils.RespondWithInternalError(c, "Error while extracting keywords", nil)
			return
		}

		if len(keywords) == 0 {
			logger.Warn("No keywords found.")
		} else {
			logger.Info("Keywords extracted", "count", len(keywords))
		}

		c.JSON(http.StatusOK, models.ExtractionResponse{Keywords: keywords})
	})

	protected.GET("/search-keywords", func(c *gin.Context) {
		pattern := c.Query("pattern")
		logger.Info("Searching keywords", "pattern", pattern)

		keywords := extractor.Search(pattern)

		if len(keywords) == 0 {
			logger.Warn("No keywords found.")
		} else {
			logger.Info("Keywords matched", "count", len(keywords))
		}

		c.JSON(http.StatusOK, keywords)
	})

	protected.POST("/reload", func(c *gin.Context) {
		if err := state.Load(cfg.KeywordsPath()); err != nil {
			metrics.RecordReload("failure")
			utils.RespondWithInternalError(c, "Catalog reload failed", gin.H{"error": err.Error()})
			return
		}
		metrics.RecordReload("success")
		c.JSON(http.StatusOK, gin.H{
			"status":   string(state.Status()),
			"keywords": state.Catalog().Size(),
		})
	})
}
