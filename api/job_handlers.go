package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")
	if result := ValidateJobID(jobID); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	job, err := api.service.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetJobResultHandler returns the report of a completed job
func (api *API) GetJobResultHandler(c *gin.Context) {
	jobID := c.Param("jobId")
	job, err := api.service.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	switch job.Status {
	case model.JobStatusCompleted:
		c.JSON(http.StatusOK, job.Result)
	case model.JobStatusFailed, model.JobStatusCancelled:
		SendError(c, http.StatusConflict, ErrorCodeJobExecutionFailed,
			"Job '"+jobID+"' ended as "+string(job.Status)+": "+job.Error)
	default:
		SendError(c, http.StatusConflict, ErrorCodeJobNotFinished,
			"Job '"+jobID+"' is still "+string(job.Status))
	}
}

// ListJobsHandler handles requests to list jobs, optionally filtered by status
func (api *API) ListJobsHandler(c *gin.Context) {
	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.service.ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// CancelJobHandler asks a pending or running job to stop
func (api *API) CancelJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")
	if err := api.service.CancelJob(jobID); err != nil {
		if stderrors.Is(err, errors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendError(c, http.StatusConflict, ErrorCodeJobFinished, err.Error())
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cancellation requested for job '" + jobID + "'",
		"job_id":  jobID,
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics":          api.service.GetMetrics(),
		"success_rate":     api.service.GetJobSuccessRate(),
		"current_workload": api.service.GetCurrentWorkload(),
	})
}
