package usecase

import (
	"context"
	"encoding/json"

	drepo "MacroPull/internal/domain/repository"
	"MacroPull/pkg/logger"
)

// RunRequestHandler consumes analysis run requests from Kafka and executes
// a full run per message. Duplicate or queued-up requests simply rerun the
// analysis; the operation is idempotent for a given data day.
type RunRequestHandler struct {
	topic   string
	runner  *AnalysisRunner
	proc    *ReportProcessor
	metrics drepo.Metrics
	log     *logger.Logger
}

func NewRunRequestHandler(
	topic string,
	runner *AnalysisRunner,
	proc *ReportProcessor,
	metrics drepo.Metrics,
	log *logger.Logger,
) *RunRequestHandler {
	return &RunRequestHandler{topic: topic, runner: runner, proc: proc, metrics: metrics, log: log}
}

func (h *RunRequestHandler) Topic() string { return h.topic }

// incoming message schema: {requested_by}
func (h *RunRequestHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		RequestedBy string `json:"requested_by"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	h.log.Info("run requested", logger.String("requested_by", m.RequestedBy))

	bundle, err := h.runner.Run(ctx)
	if err != nil {
		h.metrics.RecordError("consumer_run")
		return err
	}
	return h.proc.Process(ctx, bundle)
}
