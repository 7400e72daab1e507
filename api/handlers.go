package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/cog-motif-finder/config"
	"github.com/gcbaptista/cog-motif-finder/services"
)

// API holds dependencies for API handlers.
type API struct {
	service services.AnalysisService
	base    config.RunSettings // input and output locations every request runs against
}

// NewAPI creates a new API handler structure. Requests choose the motif parameters
// and filters; file locations always come from base.
func NewAPI(service services.AnalysisService, base config.RunSettings) *API {
	base.ApplyDefaults()
	return &API{service: service, base: base}
}

// SetupRoutes defines all the API routes of the motif finder.
func SetupRoutes(router *gin.Engine, service services.AnalysisService, base config.RunSettings) {
	apiHandler := NewAPI(service, base)

	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBytes))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Reference information
	router.GET("/catalog", apiHandler.CatalogHandler)
	router.GET("/filters", apiHandler.FiltersHandler)

	// Analysis routes
	analysisRoutes := router.Group("/analyses")
	{
		analysisRoutes.POST("", apiHandler.RunAnalysisHandler)            // Run synchronously and return the report
		analysisRoutes.POST("/async", apiHandler.RunAnalysisAsyncHandler) // Start a background run that writes both reports
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)                   // List jobs, optionally by status
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler)      // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)              // Get job status by ID
		jobRoutes.GET("/:jobId/result", apiHandler.GetJobResultHandler) // Get the report of a completed job
		jobRoutes.DELETE("/:jobId", apiHandler.CancelJobHandler)        // Cancel a pending or running job
	}
}

// HealthCheckHandler reports that the server is up.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "cog-motif-finder",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// CatalogHandler returns the activity code descriptions.
func (api *API) CatalogHandler(c *gin.Context) {
	catalog := api.service.ActivityCatalog()
	c.JSON(http.StatusOK, gin.H{
		"activities": catalog,
		"total":      len(catalog),
	})
}

// FiltersHandler returns the selectable taxonomy and habitat filter fields.
func (api *API) FiltersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.service.FilterCatalog())
}
