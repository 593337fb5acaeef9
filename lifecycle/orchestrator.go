package lifecycle

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/juniorwebdev83/auto-qa/elevateai"
	"github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/logger"
)

// Client is the remote service surface the orchestrator drives. It is
// satisfied by *elevateai.Client and narrowed here so tests can script
// remote behavior.
type Client interface {
	Declare(ctx context.Context, opts elevateai.DeclareOptions) (elevateai.InteractionID, error)
	Upload(ctx context.Context, id elevateai.InteractionID, audio io.Reader, filename string) error
	GetStatus(ctx context.Context, id elevateai.InteractionID) (elevateai.Status, error)
	GetTranscript(ctx context.Context, id elevateai.InteractionID, punctuated bool) (*elevateai.Transcript, error)
	GetAIResults(ctx context.Context, id elevateai.InteractionID) (*elevateai.AIResults, error)
}

// Outcome is the final position of a run. State always reflects where the
// state machine ended; the transcript and analytics fields are populated
// only when Run also returned a nil error.
type Outcome struct {
	State         State
	InteractionID elevateai.InteractionID
	// Status is the last remote status observed, empty if the run failed
	// before the first poll.
	Status     elevateai.Status
	Transcript string
	Sentiment  string
	Summary    string
	Elapsed    time.Duration
}

// Orchestrator runs interactions through the remote lifecycle.
type Orchestrator struct {
	client   Client
	cfg      Config
	delayer  Delayer
	observer Observer
	now      func() time.Time
	log      *logger.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithDelayer replaces the inter-poll delay implementation.
func WithDelayer(d Delayer) Option {
	return func(o *Orchestrator) { o.delayer = d }
}

// WithObserver adds an observer for state transitions.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if o.observer == nil {
			o.observer = obs
			return
		}
		if m, ok := o.observer.(multiObserver); ok {
			o.observer = append(m, obs)
			return
		}
		o.observer = multiObserver{o.observer, obs}
	}
}

// WithClock replaces the time source used for budget accounting.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithLogger replaces the orchestrator's logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// New creates an Orchestrator. The config is defaulted and validated.
func New(client Client, cfg Config, opts ...Option) (*Orchestrator, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Orchestrator{
		client:  client,
		cfg:     cfg,
		delayer: TimerDelayer{},
		now:     time.Now,
		log:     logger.NewDefault("auto-qa").WithComponent("lifecycle"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run drives one audio interaction to a terminal state: declare, upload,
// poll until the remote status is terminal or the wait budget elapses, then
// fetch the transcript (and analytics when configured). The audio source is
// opened for the duration of the upload call only. A nil error means the
// Outcome carries a non-empty transcript; any failure leaves the remote
// interaction as is and returns a classified error.
func (o *Orchestrator) Run(ctx context.Context, src AudioSource, filename string) (*Outcome, error) {
	start := o.now()
	out := &Outcome{State: StateInit}

	if err := ctx.Err(); err != nil {
		return o.cancelled(ctx, out, start, err)
	}

	id, err := o.client.Declare(ctx, elevateai.DeclareOptions{
		LanguageTag:        o.cfg.LanguageTag,
		Vertical:           o.cfg.Vertical,
		TranscriptionMode:  o.cfg.TranscriptionMode,
		IncludeAIResults:   o.cfg.IncludeAIResults,
		OriginalFilename:   filename,
		ExternalIdentifier: uuid.NewString(),
	})
	if err != nil {
		return o.transportFailure(ctx, out, start, err)
	}
	out.InteractionID = id
	o.transition(ctx, out, start, StateDeclared, nil)

	if err := o.upload(ctx, id, src, filename); err != nil {
		return o.transportFailure(ctx, out, start, err)
	}
	o.transition(ctx, out, start, StateUploaded, nil)
	o.transition(ctx, out, start, StatePolling, nil)

	// The wait budget covers remote processing only; declare and upload time
	// is not charged against it.
	pollStart := o.now()
	for {
		status, err := o.client.GetStatus(ctx, id)
		if err != nil {
			return o.transportFailure(ctx, out, start, err)
		}
		out.Status = status

		if status.Succeeded() {
			o.transition(ctx, out, start, StateSucceeded, nil)
			break
		}
		if status.Failed() {
			err := errors.RemoteFailed(string(status))
			o.transition(ctx, out, start, StateRemoteFailed, err)
			return out, err
		}
		if o.now().Sub(pollStart) >= o.cfg.WaitBudget {
			err := errors.TimedOut(o.cfg.WaitBudget.String())
			o.transition(ctx, out, start, StateTimedOut, err)
			return out, err
		}
		if err := o.delayer.Delay(ctx, o.cfg.PollInterval); err != nil {
			return o.cancelled(ctx, out, start, err)
		}
	}

	transcript, err := o.client.GetTranscript(ctx, id, o.cfg.Punctuated)
	if err != nil {
		o.log.WithError(err).Error("transcript fetch failed", o.fields(out))
		return out, err
	}
	if transcript.Empty() {
		err := errors.EmptyResult(string(id))
		o.log.WithError(err).Error("transcript is empty", o.fields(out))
		return out, err
	}
	out.Transcript = transcript.Text()

	if o.cfg.IncludeAIResults {
		ai, err := o.client.GetAIResults(ctx, id)
		if err != nil {
			o.log.WithError(err).Warn("ai results unavailable", o.fields(out))
		} else if ai != nil {
			out.Sentiment = ai.Sentiment
			out.Summary = ai.Summary
		}
	}

	out.Elapsed = o.now().Sub(start)
	return out, nil
}

// upload opens the audio source, streams it to the service and closes it
// before returning.
func (o *Orchestrator) upload(ctx context.Context, id elevateai.InteractionID, src AudioSource, filename string) error {
	rc, err := src.Open()
	if err != nil {
		return errors.InvalidInput("audio", err.Error()).WithCause(err)
	}
	defer rc.Close()
	return o.client.Upload(ctx, id, rc, filename)
}

// transportFailure classifies a failed remote call. Cancellation wins over
// whatever the aborted call reported.
func (o *Orchestrator) transportFailure(ctx context.Context, out *Outcome, start time.Time, cause error) (*Outcome, error) {
	if ctx.Err() != nil {
		return o.cancelled(ctx, out, start, cause)
	}
	o.transition(ctx, out, start, StateTransportFailed, cause)
	return out, cause
}

func (o *Orchestrator) cancelled(ctx context.Context, out *Outcome, start time.Time, cause error) (*Outcome, error) {
	err := errors.Cancelled().WithCause(cause)
	o.transition(ctx, out, start, StateCancelled, err)
	return out, err
}

func (o *Orchestrator) transition(ctx context.Context, out *Outcome, start time.Time, to State, err error) {
	from := out.State
	out.State = to
	out.Elapsed = o.now().Sub(start)
	if o.observer != nil {
		o.observer.StateChanged(ctx, Event{
			InteractionID: out.InteractionID,
			From:          from,
			To:            to,
			Status:        out.Status,
			Err:           err,
			Elapsed:       out.Elapsed,
		})
	}
}

func (o *Orchestrator) fields(out *Outcome) map[string]interface{} {
	return map[string]interface{}{
		logger.FieldInteraction: string(out.InteractionID),
		logger.FieldState:       out.State.String(),
	}
}
