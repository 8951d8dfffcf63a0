package triage

import (
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
)

// Pipeline runs normalize, score, sort over an immutable snapshot of raw
// tickets and lookups. It holds no mutable state of its own, so one Pipeline
// can serve concurrent requests as long as each call owns its inputs.
type Pipeline struct {
	normalizer *Normalizer
	scorer     *Scorer
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewPipeline wires the pipeline stages. metrics may be nil.
func NewPipeline(normalizer *Normalizer, scorer *Scorer, metrics *observability.Metrics, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{normalizer: normalizer, scorer: scorer, metrics: metrics, logger: logger}
}

// Run produces the final presentation order for a ticket snapshot.
func (p *Pipeline) Run(raw []domain.RawTicket, lookups domain.Lookups) []domain.NormalizedTicket {
	tickets := p.normalizer.NormalizeAll(raw, lookups)
	p.scorer.ScoreAll(tickets)
	Sort(tickets)

	p.metrics.RecordTicketsScored(len(tickets))
	p.logger.Info("triage pipeline complete", zap.Int("tickets", len(tickets)))
	return tickets
}
