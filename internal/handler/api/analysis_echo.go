package api

import (
	"fmt"
	"time"

	models "github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	"github.com/ericakcc/gann-btc-predictor/internal/service/ratelimit"
	"github.com/ericakcc/gann-btc-predictor/internal/usecase"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	xhttp "github.com/ericakcc/gann-btc-predictor/pkg/http"
	xlogger "github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/queue"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis engine over HTTP.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	queue    queue.Service // nil when Redis is disabled
	cache    cache.Service
	limiter  *ratelimit.Limiter
	health   func() map[string]interface{}
}

func NewAnalysisHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	q queue.Service,
	c cache.Service,
	health func() map[string]interface{},
) *AnalysisHandler {
	return &AnalysisHandler{
		logger:   logger,
		analyzer: analyzer,
		queue:    q,
		cache:    c,
		limiter:  ratelimit.New(5, 2),
		health:   health,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analysis", h.Analyze)
	g.POST("/analysis", h.Analyze)
	g.POST("/analysis/manual", h.AnalyzeManual)
	g.POST("/analysis/async", h.AnalyzeAsync)
	g.GET("/analysis/jobs/:id", h.JobStatus)
	g.GET("/pivots", h.Pivots)
	g.GET("/levels", h.Levels)
	g.GET("/seasonal", h.Seasonal)
	g.GET("/health", h.Health)
}

// allow throttles per client IP: 5 requests burst, 2 per second refill.
func (h *AnalysisHandler) allow(c echo.Context) bool {
	return h.limiter.Allow(c.RealIP())
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	if !h.allow(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.analyzer.Analyze(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("analysis error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *AnalysisHandler) AnalyzeManual(c echo.Context) error {
	if !h.allow(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}
	req := &models.ManualAnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.analyzer.AnalyzeManual(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("manual analysis error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *AnalysisHandler) AnalyzeAsync(c echo.Context) error {
	if h.queue == nil {
		return xhttp.BadRequestResponse(c, "async analysis requires redis")
	}
	if !h.allow(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	jobID := fmt.Sprintf("%s-%d", req.Symbol, time.Now().UnixNano())
	payload := usecase.AnalysisJobPayload{JobID: jobID, Request: *req}
	if err := h.queue.Enqueue(c.Request().Context(), usecase.AnalysisJobType, payload); err != nil {
		h.logger.Error("enqueue analysis error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	pending := usecase.JobResult{
		JobID:     jobID,
		Status:    usecase.JobStatusPending,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.cache.Set(c.Request().Context(), usecase.JobKey(jobID), pending, time.Hour); err != nil {
		h.logger.Warn("store pending job failed", xlogger.Error(err))
	}

	return xhttp.AcceptedResponse(c, map[string]string{"job_id": jobID})
}

func (h *AnalysisHandler) JobStatus(c echo.Context) error {
	jobID := c.Param("id")
	if jobID == "" {
		return xhttp.BadRequestResponse(c, "job id required")
	}

	var result usecase.JobResult
	if err := h.cache.Get(c.Request().Context(), usecase.JobKey(jobID), &result); err != nil {
		if err == cache.ErrCacheMiss {
			return xhttp.NotFoundResponse(c, "job not found")
		}
		h.logger.Error("job status error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) Pivots(c echo.Context) error {
	if !h.allow(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
	}
	req := &models.PivotsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	pivots, err := h.analyzer.Pivots(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("pivots error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, pivots, int64(len(pivots)))
}

func (h *AnalysisHandler) Levels(c echo.Context) error {
	req := &models.LevelsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.analyzer.Levels(req))
}

func (h *AnalysisHandler) Seasonal(c echo.Context) error {
	req := &models.SeasonalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	dates, err := h.analyzer.Seasonal(req)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.ListResponse(c, dates, int64(len(dates)))
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	status := map[string]interface{}{"status": "ok"}
	if h.health != nil {
		for k, v := range h.health() {
			status[k] = v
		}
	}
	return xhttp.SuccessResponse(c, status)
}
