package qa

import (
	"context"

	"github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/lifecycle"
	"github.com/juniorwebdev83/auto-qa/logger"
	"github.com/juniorwebdev83/auto-qa/observability"
	"github.com/juniorwebdev83/auto-qa/rubric"
)

// Runner drives one audio payload through the remote lifecycle. Satisfied
// by *lifecycle.Orchestrator.
type Runner interface {
	Run(ctx context.Context, src lifecycle.AudioSource, filename string) (*lifecycle.Outcome, error)
}

// Service processes audio end to end: remote transcription followed by
// rubric scoring.
type Service struct {
	runner  Runner
	rubric  *rubric.Rubric
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewService creates a Service. A nil rubric selects the default rubric;
// a nil metrics disables score recording.
func NewService(runner Runner, r *rubric.Rubric, metrics *observability.Metrics, log *logger.Logger) *Service {
	if r == nil {
		r = rubric.Default()
	}
	if log == nil {
		log = logger.NewDefault("auto-qa")
	}
	return &Service{
		runner:  runner,
		rubric:  r,
		metrics: metrics,
		log:     log.WithComponent("qa"),
	}
}

// ProcessAudio submits the audio, waits for remote processing and scores
// the transcript. On any lifecycle failure the classified error is returned
// and no result is produced.
func (s *Service) ProcessAudio(ctx context.Context, audio []byte, filename string) (*Result, error) {
	if len(audio) == 0 {
		return nil, errors.InvalidInput("audio", "audio payload is empty")
	}

	out, err := s.runner.Run(ctx, lifecycle.BytesSource(audio), filename)
	if err != nil {
		return nil, err
	}

	breakdown := s.rubric.Score(out.Transcript)
	if s.metrics != nil {
		s.metrics.RecordScore(ctx, breakdown.Total)
	}
	s.log.Info("audio processed", map[string]interface{}{
		logger.FieldInteraction: string(out.InteractionID),
		logger.FieldDuration:    out.Elapsed.String(),
		"qa_score":              breakdown.Total,
	})

	return &Result{
		InteractionID:  string(out.InteractionID),
		Transcription:  out.Transcript,
		QAScore:        breakdown.Total,
		MaxScore:       s.rubric.MaxScore(),
		ScoreBreakdown: breakdown.Items,
		Sentiment:      out.Sentiment,
		Summary:        out.Summary,
	}, nil
}
