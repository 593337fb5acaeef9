package qa

import "github.com/juniorwebdev83/auto-qa/rubric"

// Result is the assembled outcome of one processed call. It is only built
// when the transcript was obtained, so Transcription is never empty and the
// breakdown always covers every rubric criterion.
type Result struct {
	InteractionID  string                  `json:"interactionId"`
	Transcription  string                  `json:"transcription"`
	QAScore        int                     `json:"qaScore"`
	MaxScore       int                     `json:"maxScore"`
	ScoreBreakdown []rubric.CriterionScore `json:"scoreBreakdown"`
	Sentiment      string                  `json:"sentiment,omitempty"`
	Summary        string                  `json:"summary,omitempty"`
}
