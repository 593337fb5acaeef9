package elevateai

import "strings"

// InteractionID identifies one declared interaction on the remote service.
// It is assigned by the service during declare; client operations accept
// only this type, never a raw response object.
type InteractionID string

// String returns the identifier as a string.
func (id InteractionID) String() string { return string(id) }

// Status is the remote processing status of an interaction.
type Status string

// Remote status values.
const (
	StatusDeclared           Status = "declared"
	StatusFileUploaded       Status = "fileUploaded"
	StatusFileDownloaded     Status = "fileDownloaded"
	StatusProcessing         Status = "processing"
	StatusProcessed          Status = "processed"
	StatusProcessingFailed   Status = "processingFailed"
	StatusFileDownloadFailed Status = "fileDownloadFailed"
)

// Succeeded reports whether processing completed successfully.
func (s Status) Succeeded() bool { return s == StatusProcessed }

// Failed reports whether the remote service gave up on the interaction.
func (s Status) Failed() bool {
	return s == StatusProcessingFailed || s == StatusFileDownloadFailed
}

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool { return s.Succeeded() || s.Failed() }

// DeclareOptions holds the submission parameters for a new interaction.
// All fields are immutable once declared.
type DeclareOptions struct {
	// LanguageTag is the expected audio language (e.g. "en-us").
	LanguageTag string
	// Vertical selects the domain model (e.g. "default").
	Vertical string
	// TranscriptionMode selects the transcription engine mode (e.g. "highAccuracy").
	TranscriptionMode string
	// DownloadURI, if set, lets the service fetch the audio itself instead of
	// a subsequent upload call.
	DownloadURI string
	// IncludeAIResults requests sentiment and summary generation.
	IncludeAIResults bool
	// OriginalFilename is the caller-supplied name of the audio file.
	OriginalFilename string
	// ExternalIdentifier correlates the interaction with a caller-side record.
	ExternalIdentifier string
}

// declareRequest is the wire shape of POST /interactions.
type declareRequest struct {
	Type                   string `json:"type"`
	DownloadURI            string `json:"downloadUri,omitempty"`
	LanguageTag            string `json:"languageTag"`
	Vertical               string `json:"vertical"`
	AudioTranscriptionMode string `json:"audioTranscriptionMode"`
	IncludeAIResults       bool   `json:"includeAiResults"`
	OriginalFilename       string `json:"originalFilename,omitempty"`
	ExternalIdentifier     string `json:"externalIdentifier,omitempty"`
}

// declareResponse is the wire shape of the declare reply.
type declareResponse struct {
	InteractionIdentifier InteractionID `json:"interactionIdentifier"`
}

// statusResponse is the wire shape of GET /interactions/{id}/status.
type statusResponse struct {
	Status Status `json:"status"`
}

// SentenceSegment is one sentence of the punctuated transcript.
type SentenceSegment struct {
	Phrase          string `json:"phrase"`
	StartTimeOffset int64  `json:"startTimeOffset,omitempty"`
	EndTimeOffset   int64  `json:"endTimeOffset,omitempty"`
	Participant     string `json:"participant,omitempty"`
}

// Transcript is the sentence-segmented transcript of an interaction.
type Transcript struct {
	SentenceSegments []SentenceSegment `json:"sentenceSegments"`
}

// Empty reports whether the transcript carries no usable content.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.SentenceSegments) == 0
}

// Text joins all segment phrases into one transcript string.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}
	phrases := make([]string, 0, len(t.SentenceSegments))
	for _, seg := range t.SentenceSegments {
		phrases = append(phrases, seg.Phrase)
	}
	return strings.Join(phrases, " ")
}

// AIResults carries the optional analytics attached to a processed interaction.
// Either field may be absent; absence is not an error.
type AIResults struct {
	Sentiment string `json:"sentiment,omitempty"`
	Summary   string `json:"summary,omitempty"`
}
