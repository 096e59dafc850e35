package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	"github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/queue"
)

// AnalysisJobType is the queue message type for background analyses.
const AnalysisJobType = "analysis.run"

// Job status values served by the job status endpoint.
const (
	JobStatusPending = "pending"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// AnalysisJobPayload is the queued request for a background analysis.
type AnalysisJobPayload struct {
	JobID   string                 `json:"job_id"`
	Request models.AnalysisRequest `json:"request"`
}

// JobResult is what the status endpoint returns for a queued analysis.
type JobResult struct {
	JobID     string                 `json:"job_id"`
	Status    string                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Report    *models.AnalysisReport `json:"report,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// AnalysisJob consumes queued analysis requests and stores results in the
// cache for later retrieval.
type AnalysisJob struct {
	analyzer *Analyzer
	cache    cache.Service
	log      *logger.Logger
	ttl      time.Duration
}

// NewAnalysisJob creates the background analysis job handler.
func NewAnalysisJob(analyzer *Analyzer, c cache.Service, log *logger.Logger, ttl time.Duration) *AnalysisJob {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnalysisJob{analyzer: analyzer, cache: c, log: log, ttl: ttl}
}

func (j *AnalysisJob) Name() string { return "analysis" }
func (j *AnalysisJob) Type() string { return AnalysisJobType }

func (j *AnalysisJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[AnalysisJobPayload](payload)
	if err != nil {
		return fmt.Errorf("parse analysis payload: %w", err)
	}

	report, err := j.analyzer.Analyze(ctx, &p.Request)
	result := JobResult{
		JobID:     p.JobID,
		UpdatedAt: time.Now().UTC(),
	}
	if err != nil {
		result.Status = JobStatusFailed
		result.Error = err.Error()
	} else {
		result.Status = JobStatusDone
		result.Report = report
	}

	if cerr := j.cache.Set(ctx, JobKey(p.JobID), result, j.ttl); cerr != nil {
		j.log.Error("store job result failed",
			logger.String("job_id", p.JobID), logger.Error(cerr))
		return cerr
	}
	return err
}

// JobKey builds the cache key for a job result.
func JobKey(jobID string) string {
	return cache.Key("job", jobID)
}

var _ queue.Job = (*AnalysisJob)(nil)
