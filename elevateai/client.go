package elevateai

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/httpclient"
	"github.com/juniorwebdev83/auto-qa/logger"
)

const (
	// ServiceName is used in error messages and log fields.
	ServiceName = "ElevateAI"

	defaultBaseURL = "https://api.elevateai.com/v1"
	tokenHeader    = "X-API-TOKEN"
)

// ErrNotReady indicates a transcript or AI-results request before processing
// finished. Callers must poll status to terminal success first; this is a
// usage error, not a condition to retry.
var ErrNotReady = stderrors.New("elevateai: interaction not processed yet")

// Config configures the ElevateAI client.
type Config struct {
	// BaseURL is the API root. Defaults to the public endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// APIToken authenticates every call via the X-API-TOKEN header.
	APIToken string `yaml:"api_token" mapstructure:"api_token" validate:"required"`
	// Timeout bounds each individual remote call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("elevateai.api_token is required")
	}
	return nil
}

// Client talks to the ElevateAI interactions API.
type Client struct {
	http *httpclient.Client
	log  *logger.Logger
}

// New creates a new ElevateAI client.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuth(cfg.APIToken, tokenHeader),
	})
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("elevateai")
	log.Debug("client configured", logger.Fields(
		"base_url", cfg.BaseURL,
		"api_token", maskToken(cfg.APIToken),
	))

	return &Client{
		http: hc,
		log:  log,
	}, nil
}

// maskToken keeps a short prefix of the API token for log correlation and
// hides the rest.
func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return "***"
	}
	return token[:visible] + "***"
}

// Declare registers a new interaction and returns its identifier.
// It is the first step of the lifecycle; no audio is transferred yet.
func (c *Client) Declare(ctx context.Context, opts DeclareOptions) (InteractionID, error) {
	body := declareRequest{
		Type:                   "audio",
		DownloadURI:            opts.DownloadURI,
		LanguageTag:            opts.LanguageTag,
		Vertical:               opts.Vertical,
		AudioTranscriptionMode: opts.TranscriptionMode,
		IncludeAIResults:       opts.IncludeAIResults,
		OriginalFilename:       opts.OriginalFilename,
		ExternalIdentifier:     opts.ExternalIdentifier,
	}

	resp, err := httpclient.Post[declareResponse](ctx, c.http, "/interactions", body)
	if err != nil {
		return "", c.translate("declare", err)
	}
	if resp.Data.InteractionIdentifier == "" {
		return "", errors.MalformedResponse("declare", nil, fmt.Errorf("missing interactionIdentifier"))
	}

	c.log.Debug("interaction declared", logger.Fields(
		logger.FieldInteraction, resp.Data.InteractionIdentifier.String(),
		"language_tag", opts.LanguageTag,
		"vertical", opts.Vertical,
	))
	return resp.Data.InteractionIdentifier, nil
}

// Upload transfers the audio bytes for a declared interaction. The remote
// service starts asynchronous processing once this call returns successfully.
func (c *Client) Upload(ctx context.Context, id InteractionID, audio io.Reader, filename string) error {
	if id == "" {
		return errors.InvalidInput("interaction_id", "upload before declare")
	}

	_, err := c.http.Do(ctx, httpclient.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/interactions/%s/upload", id),
		Body: &httpclient.MultipartBody{
			FieldName: "file",
			FileName:  filename,
			Content:   audio,
		},
	})
	if err != nil {
		return c.translate("upload", err)
	}

	c.log.Debug("audio uploaded", logger.Fields(
		logger.FieldInteraction, id.String(),
		"filename", filename,
	))
	return nil
}

// GetStatus returns the current processing status. Idempotent; it is the
// sole progress signal and safe to call repeatedly.
func (c *Client) GetStatus(ctx context.Context, id InteractionID) (Status, error) {
	resp, err := httpclient.Get[statusResponse](ctx, c.http, fmt.Sprintf("/interactions/%s/status", id))
	if err != nil {
		return "", c.translate("status", err)
	}
	if resp.Data.Status == "" {
		return "", errors.MalformedResponse("status", nil, fmt.Errorf("missing status"))
	}
	return resp.Data.Status, nil
}

// GetTranscript fetches the transcript of a processed interaction.
// punctuated=true selects the sentence-segmented human-readable form,
// false the word-level form. Returns ErrNotReady when processing has not
// reached terminal success.
func (c *Client) GetTranscript(ctx context.Context, id InteractionID, punctuated bool) (*Transcript, error) {
	path := fmt.Sprintf("/interactions/%s/transcripts", id)
	if punctuated {
		path += "/punctuated"
	}

	resp, err := httpclient.Get[Transcript](ctx, c.http, path)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, ErrNotReady
		}
		return nil, c.translate("transcript", err)
	}
	return &resp.Data, nil
}

// GetAIResults fetches sentiment and summary for a processed interaction.
// Both fields are optional on the remote side; absence is not a failure.
func (c *Client) GetAIResults(ctx context.Context, id InteractionID) (*AIResults, error) {
	resp, err := httpclient.Get[AIResults](ctx, c.http, fmt.Sprintf("/interactions/%s/ai", id))
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, ErrNotReady
		}
		return nil, c.translate("ai results", err)
	}
	return &resp.Data, nil
}

// translate maps transport-level errors into the application taxonomy.
func (c *Client) translate(operation string, err error) error {
	var clientErr *httpclient.Error
	if !stderrors.As(err, &clientErr) {
		return errors.Internal(err)
	}

	switch clientErr.Code {
	case httpclient.ErrCodeAuth:
		return errors.Unauthorized(ServiceName)
	case httpclient.ErrCodeConnection, httpclient.ErrCodeTimeout:
		return errors.Unreachable(ServiceName, clientErr).WithDetail("operation", operation)
	case httpclient.ErrCodeValidation:
		// Status 0 means the request never produced a response (it failed
		// to build or marshal locally). There is nothing remote to blame.
		if clientErr.StatusCode == 0 {
			return errors.Internal(clientErr).WithDetail("operation", operation)
		}
		// Decode failures carry a 2xx status; the service answered but the
		// body was not the expected structure.
		if clientErr.StatusCode < 400 {
			return errors.MalformedResponse(operation, clientErr.Body, clientErr.Err)
		}
		return errors.BadRequest(rejectReason(clientErr)).WithDetail("operation", operation)
	default:
		return errors.Unreachable(ServiceName, clientErr).WithDetail("operation", operation)
	}
}

// rejectReason extracts a short human-readable reason from a 4xx body.
func rejectReason(err *httpclient.Error) string {
	body := strings.TrimSpace(string(err.Body))
	if body == "" {
		return err.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return body
}
