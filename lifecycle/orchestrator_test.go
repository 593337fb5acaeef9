package lifecycle

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/juniorwebdev83/auto-qa/elevateai"
	"github.com/juniorwebdev83/auto-qa/errors"
)

type fakeClient struct {
	mu sync.Mutex

	declareID  elevateai.InteractionID
	declareErr error
	uploadErr  error
	statuses   []elevateai.Status
	statusErr  error
	transcript *elevateai.Transcript
	fetchErr   error
	ai         *elevateai.AIResults
	aiErr      error

	declareCalls    int
	uploadCalls     int
	statusCalls     int
	transcriptCalls int
	aiCalls         int
	uploaded        []byte
	punctuated      bool
}

func (f *fakeClient) Declare(_ context.Context, _ elevateai.DeclareOptions) (elevateai.InteractionID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declareCalls++
	if f.declareErr != nil {
		return "", f.declareErr
	}
	return f.declareID, nil
}

func (f *fakeClient) Upload(_ context.Context, _ elevateai.InteractionID, audio io.Reader, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(audio)
	if err != nil {
		return err
	}
	f.uploaded = data
	return nil
}

func (f *fakeClient) GetStatus(_ context.Context, _ elevateai.InteractionID) (elevateai.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return "", f.statusErr
	}
	idx := f.statusCalls
	f.statusCalls++
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	return f.statuses[idx], nil
}

func (f *fakeClient) GetTranscript(_ context.Context, _ elevateai.InteractionID, punctuated bool) (*elevateai.Transcript, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcriptCalls++
	f.punctuated = punctuated
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.transcript, nil
}

func (f *fakeClient) GetAIResults(_ context.Context, _ elevateai.InteractionID) (*elevateai.AIResults, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aiCalls++
	if f.aiErr != nil {
		return nil, f.aiErr
	}
	return f.ai, nil
}

// trackedSource reports whether Open ran and whether the reader was closed.
type trackedSource struct {
	data   []byte
	opened bool
	closed bool
}

func (s *trackedSource) Open() (io.ReadCloser, error) {
	s.opened = true
	return &trackedReader{src: s, data: s.data}, nil
}

type trackedReader struct {
	src  *trackedSource
	data []byte
	off  int
}

func (r *trackedReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}

func (r *trackedReader) Close() error {
	r.src.closed = true
	return nil
}

// noDelay skips the inter-poll wait while still honoring cancellation.
func noDelay() Delayer {
	return DelayerFunc(func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	})
}

func transcriptOf(phrases ...string) *elevateai.Transcript {
	t := &elevateai.Transcript{}
	for _, p := range phrases {
		t.SentenceSegments = append(t.SentenceSegments, elevateai.SentenceSegment{Phrase: p})
	}
	return t
}

func newTestOrchestrator(t *testing.T, client Client, opts ...Option) *Orchestrator {
	t.Helper()
	opts = append([]Option{WithDelayer(noDelay())}, opts...)
	o, err := New(client, Config{}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestRunSuccess(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-1",
		statuses:   []elevateai.Status{elevateai.StatusProcessing, elevateai.StatusProcessing, elevateai.StatusProcessed},
		transcript: transcriptOf("Hello.", "How may I help you?"),
		ai:         &elevateai.AIResults{Sentiment: "positive", Summary: "greeting"},
	}
	src := &trackedSource{data: []byte("audio-bytes")}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), src, "call.wav")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out.State != StateSucceeded {
		t.Errorf("State = %v, want %v", out.State, StateSucceeded)
	}
	if out.InteractionID != "int-1" {
		t.Errorf("InteractionID = %q, want %q", out.InteractionID, "int-1")
	}
	if out.Transcript != "Hello. How may I help you?" {
		t.Errorf("Transcript = %q", out.Transcript)
	}
	if out.Sentiment != "positive" || out.Summary != "greeting" {
		t.Errorf("analytics = (%q, %q)", out.Sentiment, out.Summary)
	}
	if client.statusCalls != 3 {
		t.Errorf("status calls = %d, want 3", client.statusCalls)
	}
	if client.transcriptCalls != 1 {
		t.Errorf("transcript calls = %d, want exactly 1", client.transcriptCalls)
	}
	if !client.punctuated {
		t.Error("expected punctuated transcript variant")
	}
	if string(client.uploaded) != "audio-bytes" {
		t.Errorf("uploaded = %q", client.uploaded)
	}
	if !src.closed {
		t.Error("audio source not closed after upload")
	}
}

func TestRunDeclareFailureSkipsUpload(t *testing.T) {
	client := &fakeClient{declareErr: errors.Unauthorized(elevateai.ServiceName)}
	src := &trackedSource{data: []byte("x")}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), src, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeUnauthorized {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeUnauthorized)
	}
	if out.State != StateTransportFailed {
		t.Errorf("State = %v, want %v", out.State, StateTransportFailed)
	}
	if src.opened {
		t.Error("audio source opened despite declare failure")
	}
	if client.uploadCalls != 0 || client.statusCalls != 0 || client.transcriptCalls != 0 {
		t.Errorf("downstream calls after declare failure: upload=%d status=%d transcript=%d",
			client.uploadCalls, client.statusCalls, client.transcriptCalls)
	}
}

func TestRunUploadFailureClosesSource(t *testing.T) {
	client := &fakeClient{
		declareID: "int-2",
		uploadErr: errors.Unreachable(elevateai.ServiceName, io.ErrUnexpectedEOF),
	}
	src := &trackedSource{data: []byte("x")}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), src, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if out.State != StateTransportFailed {
		t.Errorf("State = %v, want %v", out.State, StateTransportFailed)
	}
	if !src.closed {
		t.Error("audio source not closed after failed upload")
	}
	if client.statusCalls != 0 {
		t.Errorf("status calls = %d after upload failure", client.statusCalls)
	}
}

func TestRunRemoteFailed(t *testing.T) {
	client := &fakeClient{
		declareID: "int-3",
		statuses:  []elevateai.Status{elevateai.StatusProcessing, elevateai.StatusProcessingFailed},
	}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeRemoteFailed {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeRemoteFailed)
	}
	if out.State != StateRemoteFailed {
		t.Errorf("State = %v, want %v", out.State, StateRemoteFailed)
	}
	if client.transcriptCalls != 0 {
		t.Error("transcript fetched after remote failure")
	}
}

func TestRunTimedOut(t *testing.T) {
	client := &fakeClient{
		declareID: "int-4",
		statuses:  []elevateai.Status{elevateai.StatusProcessing},
	}

	// Each poll observes a clock 2 minutes later than the previous one, so
	// the 5 minute budget runs out after a handful of polls.
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(2 * time.Minute)
		return now
	}

	o := newTestOrchestrator(t, client, WithClock(clock))
	out, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeTimedOut {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeTimedOut)
	}
	if out.State != StateTimedOut {
		t.Errorf("State = %v, want %v", out.State, StateTimedOut)
	}
	if client.transcriptCalls != 0 {
		t.Error("transcript fetched after timeout")
	}
}

func TestRunBudgetExcludesDeclareAndUpload(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-9",
		statuses:   []elevateai.Status{elevateai.StatusProcessing, elevateai.StatusProcessed},
		transcript: transcriptOf("Hello."),
	}

	// Every clock read advances 90 seconds, so declare and upload alone
	// consume more wall time than the whole 5 minute budget. The run still
	// succeeds because the budget is charged from the first poll only.
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(90 * time.Second)
		return now
	}

	o := newTestOrchestrator(t, client, WithClock(clock))
	out, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.State != StateSucceeded {
		t.Errorf("State = %v, want %v", out.State, StateSucceeded)
	}
	if client.statusCalls != 2 {
		t.Errorf("status calls = %d, want 2", client.statusCalls)
	}
}

func TestRunEmptyTranscript(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-5",
		statuses:   []elevateai.Status{elevateai.StatusProcessed},
		transcript: &elevateai.Transcript{},
	}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeEmptyResult {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeEmptyResult)
	}
	if out.State != StateSucceeded {
		t.Errorf("State = %v, want %v (processing itself succeeded)", out.State, StateSucceeded)
	}
	if out.Transcript != "" {
		t.Errorf("Transcript = %q, want empty", out.Transcript)
	}
}

func TestRunCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		declareID: "int-6",
		statuses:  []elevateai.Status{elevateai.StatusProcessing},
	}
	// Cancel while the orchestrator is waiting between polls.
	delayer := DelayerFunc(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	})

	o := newTestOrchestrator(t, client, WithDelayer(delayer))
	out, err := o.Run(ctx, &trackedSource{data: []byte("x")}, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeCancelled {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeCancelled)
	}
	if out.State != StateCancelled {
		t.Errorf("State = %v, want %v", out.State, StateCancelled)
	}
	if client.statusCalls != 1 {
		t.Errorf("status calls = %d, want 1 (no poll after cancellation)", client.statusCalls)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{declareID: "int-7"}
	o := newTestOrchestrator(t, client)
	out, err := o.Run(ctx, &trackedSource{data: []byte("x")}, "call.wav")
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if errors.CodeOf(err) != errors.ErrCodeCancelled {
		t.Errorf("code = %v, want %v", errors.CodeOf(err), errors.ErrCodeCancelled)
	}
	if out.State != StateCancelled {
		t.Errorf("State = %v, want %v", out.State, StateCancelled)
	}
	if client.declareCalls != 0 {
		t.Errorf("declare calls = %d, want 0", client.declareCalls)
	}
}

func TestRunAIResultsBestEffort(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-8",
		statuses:   []elevateai.Status{elevateai.StatusProcessed},
		transcript: transcriptOf("Hello."),
		aiErr:      errors.Unreachable(elevateai.ServiceName, io.ErrUnexpectedEOF),
	}

	o := newTestOrchestrator(t, client)
	out, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav")
	if err != nil {
		t.Fatalf("Run() error = %v, analytics failure must not fail the run", err)
	}

	if out.Transcript != "Hello." {
		t.Errorf("Transcript = %q", out.Transcript)
	}
	if out.Sentiment != "" || out.Summary != "" {
		t.Errorf("analytics = (%q, %q), want empty", out.Sentiment, out.Summary)
	}
}

func TestRunSkipsAIResultsWhenDisabled(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-9",
		statuses:   []elevateai.Status{elevateai.StatusProcessed},
		transcript: transcriptOf("Hello."),
	}

	cfg := DefaultConfig()
	cfg.IncludeAIResults = false
	o, err := New(client, cfg, WithDelayer(noDelay()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if client.aiCalls != 0 {
		t.Errorf("ai calls = %d, want 0", client.aiCalls)
	}
}

func TestRunObserverSequence(t *testing.T) {
	client := &fakeClient{
		declareID:  "int-10",
		statuses:   []elevateai.Status{elevateai.StatusProcessing, elevateai.StatusProcessed},
		transcript: transcriptOf("Hello."),
	}

	var seq []State
	obs := ObserverFunc(func(_ context.Context, e Event) {
		seq = append(seq, e.To)
	})

	o := newTestOrchestrator(t, client, WithObserver(obs))
	if _, err := o.Run(context.Background(), &trackedSource{data: []byte("x")}, "call.wav"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []State{StateDeclared, StateUploaded, StatePolling, StateSucceeded}
	if len(seq) != len(want) {
		t.Fatalf("transitions = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("transition[%d] = %v, want %v", i, seq[i], want[i])
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := Config{PollInterval: 10 * time.Second, WaitBudget: time.Second}
	if _, err := New(&fakeClient{}, cfg); err == nil {
		t.Error("New() expected error for wait budget below poll interval")
	}
}

func TestTimerDelayerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- TimerDelayer{}.Delay(ctx, time.Hour)
	}()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Delay() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Delay() did not return after cancellation")
	}
}

func TestTimerDelayerElapses(t *testing.T) {
	if err := (TimerDelayer{}).Delay(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Delay() error = %v", err)
	}
}
