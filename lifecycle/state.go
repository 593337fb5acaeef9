package lifecycle

// State is the orchestrator's position in the interaction lifecycle.
type State int

const (
	// StateInit is the state before the interaction is declared remotely.
	StateInit State = iota
	// StateDeclared means the remote service has assigned an interaction
	// identifier but has not yet received the audio.
	StateDeclared
	// StateUploaded means the audio payload has been accepted.
	StateUploaded
	// StatePolling means the orchestrator is waiting on remote processing.
	StatePolling
	// StateSucceeded means remote processing reported success.
	StateSucceeded
	// StateRemoteFailed means remote processing reported failure.
	StateRemoteFailed
	// StateTimedOut means the wait budget elapsed before a terminal status.
	StateTimedOut
	// StateTransportFailed means a remote call failed or returned an
	// unusable response.
	StateTransportFailed
	// StateCancelled means the caller cancelled the run between steps.
	StateCancelled
)

// Terminal reports whether s ends the lifecycle.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateRemoteFailed, StateTimedOut, StateTransportFailed, StateCancelled:
		return true
	}
	return false
}

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDeclared:
		return "declared"
	case StateUploaded:
		return "uploaded"
	case StatePolling:
		return "polling"
	case StateSucceeded:
		return "succeeded"
	case StateRemoteFailed:
		return "remote_failed"
	case StateTimedOut:
		return "timed_out"
	case StateTransportFailed:
		return "transport_failed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}
