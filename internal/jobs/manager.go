package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/model"
)

// AnalysisFunc performs the work of one job and returns its report.
type AnalysisFunc func(ctx context.Context, job *model.Job) (*model.AnalysisReport, error)

// Manager runs analyses in the background and tracks their outcome
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	cancels  map[string]context.CancelFunc
	workers  chan struct{} // Limits concurrent jobs
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *JobMetrics
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Manager{
		jobs:     make(map[string]*model.Job),
		cancels:  make(map[string]context.CancelFunc),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewJobMetrics(),
	}
}

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	log.Printf("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.mu.Lock()
		for _, cancel := range m.cancels {
			cancel()
		}
		m.mu.Unlock()
		m.wg.Wait()
		log.Printf("Job manager stopped")
	})
}

// CreateJob registers a pending analysis and returns its ID
func (m *Manager) CreateJob(targetMarker string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:           uuid.New().String(),
		Type:         model.JobTypeAnalysis,
		Status:       model.JobStatusPending,
		TargetMarker: targetMarker,
		CreatedAt:    time.Now(),
		Metadata:     metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated()
	log.Printf("Created job %s for target marker '%s'", job.ID, job.TargetMarker)
	return job.ID
}

// GetJob returns a copy of the job
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs, newest first, optionally filtered by status
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	return &jobCopy
}

// ExecuteJob queues a pending job and returns without waiting for a worker.
// The job stays pending until a worker slot is free, then runs fn. The report fn
// returns is stored on the job when it succeeds.
func (m *Manager) ExecuteJob(jobID string, fn AnalysisFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	if _, queued := m.cancels[jobID]; queued {
		return fmt.Errorf("job with ID '%s' is already queued", jobID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[jobID] = cancel

	m.wg.Add(1)
	go m.runJob(ctx, cancel, jobID, fn)
	return nil
}

// runJob waits for a worker slot, marks the job running and executes fn.
func (m *Manager) runJob(ctx context.Context, cancel context.CancelFunc, jobID string, fn AnalysisFunc) {
	defer m.wg.Done()
	defer cancel()

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-ctx.Done():
		m.finish(jobID, model.JobStatusCancelled, "Cancelled before start", nil)
		return
	case <-m.stopChan:
		m.finish(jobID, model.JobStatusCancelled, "Job manager shutting down", nil)
		return
	}
	defer func() { <-m.workers }() // Release worker slot

	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists || ctx.Err() != nil {
		m.mu.Unlock()
		m.finish(jobID, model.JobStatusCancelled, "Cancelled before start", nil)
		return
	}
	oldStatus := job.Status
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	snapshot := copyJob(job)
	m.metrics.RecordJobStatusChange(oldStatus, job.Status)
	m.mu.Unlock()

	startTime := time.Now()
	report, err := fn(ctx, snapshot)
	executionTime := time.Since(startTime)

	switch {
	case err != nil && ctx.Err() != nil:
		m.finish(jobID, model.JobStatusCancelled, err.Error(), nil)
		log.Printf("Job %s cancelled after %v", jobID, executionTime)
	case err != nil:
		m.finish(jobID, model.JobStatusFailed, err.Error(), nil)
		m.metrics.RecordJobFailed()
		log.Printf("Job %s failed after %v: %v", jobID, executionTime, err)
	default:
		m.finish(jobID, model.JobStatusCompleted, "", report)
		m.metrics.RecordJobCompleted(executionTime, report)
		log.Printf("Job %s completed successfully in %v", jobID, executionTime)
	}
}

// CancelJob asks a pending, queued or running job to stop
func (m *Manager) CancelJob(jobID string) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	cancel, queued := m.cancels[jobID]
	status := job.Status
	m.mu.Unlock()

	switch {
	case queued:
		cancel()
	case status == model.JobStatusPending:
		m.finish(jobID, model.JobStatusCancelled, "Cancelled before start", nil)
	default:
		return fmt.Errorf("job with ID '%s' has already finished (status: %s)", jobID, status)
	}
	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}

	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string, report *model.AnalysisReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	delete(m.cancels, jobID)

	oldStatus := job.Status
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	job.Result = report
	now := time.Now()
	job.CompletedAt = &now

	m.metrics.RecordJobStatusChange(oldStatus, status)
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old jobs", cleaned)
	}
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of currently active jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}
