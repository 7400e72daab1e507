package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/cog-motif-finder/config"
)

// AnalysisRequest is the body of an analysis request.
type AnalysisRequest struct {
	MinGenomes      int                 `json:"min_genomes"`
	MotifLength     int                 `json:"motif_length"`
	TargetMarker    string              `json:"target_marker"`
	Strict          bool                `json:"strict,omitempty"`
	TopActivities   int                 `json:"top_activities,omitempty"`
	TaxonomyFilters []config.FilterSpec `json:"taxonomy_filters,omitempty"`
	HabitatFilters  []config.FilterSpec `json:"habitat_filters,omitempty"`
}

// settings applies the request on top of the server's base settings.
func (api *API) settings(req AnalysisRequest) config.RunSettings {
	s := api.base
	s.MinGenomes = req.MinGenomes
	s.MotifLength = req.MotifLength
	s.TargetMarker = req.TargetMarker
	s.Strict = req.Strict
	s.TopActivities = req.TopActivities
	s.TaxonomyFilters = req.TaxonomyFilters
	s.HabitatFilters = req.HabitatFilters
	s.ApplyDefaults()
	return s
}

func (api *API) bindSettings(c *gin.Context) (config.RunSettings, bool) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return config.RunSettings{}, false
	}

	settings := api.settings(req)
	if result := ValidateRunSettings(&settings); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return config.RunSettings{}, false
	}
	return settings, true
}

// RunAnalysisHandler runs an analysis and returns its report. Reports are written
// to the output directory only when the "write" query parameter is "true".
// Request Body: AnalysisRequest
func (api *API) RunAnalysisHandler(c *gin.Context) {
	settings, ok := api.bindSettings(c)
	if !ok {
		return
	}

	run := api.service.Analyze
	if c.Query("write") == "true" {
		run = api.service.Run
	}

	report, err := run(c.Request.Context(), settings)
	if err != nil {
		SendAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RunAnalysisAsyncHandler starts a background analysis that writes both reports.
// Request Body: AnalysisRequest
func (api *API) RunAnalysisAsyncHandler(c *gin.Context) {
	settings, ok := api.bindSettings(c)
	if !ok {
		return
	}

	jobID, err := api.service.RunAsync(settings)
	if err != nil {
		SendJobExecutionError(c, "analysis", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Analysis started for '" + settings.TargetMarker + "'",
		"job_id":  jobID,
	})
}
