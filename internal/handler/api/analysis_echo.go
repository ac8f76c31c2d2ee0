package api

import (
	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	"MacroPull/internal/report"
	"MacroPull/internal/service/ratelimit"
	"MacroPull/internal/usecase"
	xhttp "MacroPull/pkg/http"
	xlogger "MacroPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler exposes the analysis results and a manual run trigger.
type AnalysisEchoHandler struct {
	logger    *xlogger.Logger
	store     drepo.BundleStore
	assembler *report.Assembler
	runner    *usecase.AnalysisRunner
	proc      *usecase.ReportProcessor
	stream    *StreamHub
	rl        *ratelimit.Limiter
}

func NewAnalysisEchoHandler(
	logger *xlogger.Logger,
	store drepo.BundleStore,
	assembler *report.Assembler,
	runner *usecase.AnalysisRunner,
	proc *usecase.ReportProcessor,
	stream *StreamHub,
) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{
		logger:    logger,
		store:     store,
		assembler: assembler,
		runner:    runner,
		proc:      proc,
		stream:    stream,
		rl:        ratelimit.New(),
	}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/report", h.Report)
	g.GET("/report/text", h.ReportText)
	g.GET("/classifications", h.Classification)
	g.POST("/run", h.Run)
	if h.stream != nil {
		g.GET("/stream", h.stream.Serve)
	}
}

// Report returns the latest bundle as JSON.
func (h *AnalysisEchoHandler) Report(c echo.Context) error {
	b, ok := h.store.Latest(c.Request().Context())
	if !ok {
		return xhttp.NotFoundResponse(c, "no analysis has completed yet")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, b)
}

// ReportText returns the latest bundle rendered as the text report.
func (h *AnalysisEchoHandler) ReportText(c echo.Context) error {
	b, ok := h.store.Latest(c.Request().Context())
	if !ok {
		return xhttp.NotFoundResponse(c, "no analysis has completed yet")
	}
	return c.String(200, h.assembler.Build(b))
}

// Classification returns one indicator's classification from the latest run.
func (h *AnalysisEchoHandler) Classification(c echo.Context) error {
	req := &models.ClassificationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	b, ok := h.store.Latest(c.Request().Context())
	if !ok {
		return xhttp.NotFoundResponse(c, "no analysis has completed yet")
	}
	cl, ok := b.Classification(req.Indicator)
	if !ok {
		return xhttp.NotFoundResponse(c, "indicator not in latest run")
	}
	return xhttp.SuccessResponse(c, cl)
}

// Run triggers a full analysis pass inline. Throttled to one start per
// minute so a misfiring client cannot hammer the FRED API.
func (h *AnalysisEchoHandler) Run(c echo.Context) error {
	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow("api_run", 1, 1.0/60) {
		return echo.NewHTTPError(429, "analysis already ran recently, try later")
	}

	ctx := c.Request().Context()
	b, err := h.runner.Run(ctx)
	if err != nil {
		h.logger.Error("manual run failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if err := h.proc.Process(ctx, b); err != nil {
		h.logger.Error("manual run processing failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.logger.Info("manual run complete", xlogger.String("requested_by", req.RequestedBy))
	return xhttp.SuccessResponse(c, b)
}

var _ xhttp.Handler = (*AnalysisEchoHandler)(nil)
