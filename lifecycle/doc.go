// Package lifecycle drives one audio interaction through the remote
// processing state machine: declare, upload, poll until terminal, fetch
// results. Polling is bounded by a wait budget with a fixed inter-poll
// delay; the delay is a cancellable abstraction so the same orchestrator
// works under a goroutine-per-job or a cooperative scheduling model.
package lifecycle
