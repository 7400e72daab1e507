package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/cog-motif-finder/model"
)

// recentRunLimit bounds how many execution times are kept for averaging.
const recentRunLimit = 100

// JobMetricsData is a point-in-time copy of the job metrics, safe to serialize.
type JobMetricsData struct {
	JobsCreated          int64                     `json:"jobs_created"`
	JobsCompleted        int64                     `json:"jobs_completed"`
	JobsFailed           int64                     `json:"jobs_failed"`
	TotalExecutionTime   time.Duration             `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	RecentExecutionTime  time.Duration             `json:"recent_execution_time_ns"`
	LinesScanned         int64                     `json:"lines_scanned"`
	MalformedLines       int64                     `json:"malformed_lines"`
	MotifsRetained       int64                     `json:"motifs_retained"`
	JobsByStatus         map[model.JobStatus]int64 `json:"jobs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// JobMetrics tracks how analysis jobs behave over the life of a server.
type JobMetrics struct {
	mu                 sync.RWMutex
	jobsCreated        int64
	jobsCompleted      int64
	jobsFailed         int64
	totalExecutionTime time.Duration
	recentTimes        []time.Duration
	linesScanned       int64
	malformedLines     int64
	motifsRetained     int64
	jobsByStatus       map[model.JobStatus]int64
	lastUpdated        time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		jobsByStatus: make(map[model.JobStatus]int64),
		lastUpdated:  time.Now(),
	}
}

// RecordJobCreated increments the creation counter
func (m *JobMetrics) RecordJobCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsCreated++
	m.jobsByStatus[model.JobStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordJobStatusChange moves one job between status counters
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" {
		m.jobsByStatus[oldStatus]--
		if m.jobsByStatus[oldStatus] < 0 {
			m.jobsByStatus[oldStatus] = 0
		}
	}
	m.jobsByStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordJobCompleted records a successful analysis and what it scanned
func (m *JobMetrics) RecordJobCompleted(executionTime time.Duration, report *model.AnalysisReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsCompleted++
	m.totalExecutionTime += executionTime
	m.recentTimes = append(m.recentTimes, executionTime)
	if len(m.recentTimes) > recentRunLimit {
		m.recentTimes = m.recentTimes[1:]
	}

	if report != nil {
		m.linesScanned += int64(report.Stats.LinesRead)
		m.malformedLines += int64(report.Stats.MalformedLines)
		for _, g := range report.Occurrences {
			m.motifsRetained += int64(len(g.Motifs))
		}
	}
	m.lastUpdated = time.Now()
}

// RecordJobFailed records job failure
func (m *JobMetrics) RecordJobFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobsFailed++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a copy of the current metrics
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobsByStatus := make(map[model.JobStatus]int64, len(m.jobsByStatus))
	for k, v := range m.jobsByStatus {
		jobsByStatus[k] = v
	}

	data := JobMetricsData{
		JobsCreated:        m.jobsCreated,
		JobsCompleted:      m.jobsCompleted,
		JobsFailed:         m.jobsFailed,
		TotalExecutionTime: m.totalExecutionTime,
		LinesScanned:       m.linesScanned,
		MalformedLines:     m.malformedLines,
		MotifsRetained:     m.motifsRetained,
		JobsByStatus:       jobsByStatus,
		LastUpdated:        m.lastUpdated,
	}
	if m.jobsCompleted > 0 {
		data.AverageExecutionTime = m.totalExecutionTime / time.Duration(m.jobsCompleted)
	}
	if len(m.recentTimes) > 0 {
		var total time.Duration
		for _, t := range m.recentTimes {
			total += t
		}
		data.RecentExecutionTime = total / time.Duration(len(m.recentTimes))
	}
	return data
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	finished := m.jobsCompleted + m.jobsFailed
	if finished == 0 {
		return 1.0 // No jobs yet, assume 100% success
	}
	return float64(m.jobsCompleted) / float64(finished)
}

// GetCurrentWorkload returns the number of pending or running jobs
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.jobsByStatus[model.JobStatusPending] + m.jobsByStatus[model.JobStatusRunning]
}
