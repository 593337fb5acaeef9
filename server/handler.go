package server

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/logger"
	"github.com/juniorwebdev83/auto-qa/qa"
	"github.com/juniorwebdev83/auto-qa/version"
)

// audioFileField is the multipart form field carrying the upload.
const audioFileField = "audioFile"

var allowedAudioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".m4a": true,
}

// AudioProcessor runs one audio payload through transcription and scoring.
// Satisfied by *qa.Service.
type AudioProcessor interface {
	ProcessAudio(ctx context.Context, audio []byte, filename string) (*qa.Result, error)
}

// Handler serves the audio QA API.
type Handler struct {
	serviceName string
	svc         AudioProcessor
	log         *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(serviceName string, svc AudioProcessor, log *logger.Logger) *Handler {
	return &Handler{
		serviceName: serviceName,
		svc:         svc,
		log:         log.WithComponent("handler"),
	}
}

// Register mounts the API routes on the engine.
func (h *Handler) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.POST("/process-audio", h.processAudio)
	api.GET("/health", h.health)
	api.GET("/version", h.version)
}

// processAudio accepts a multipart audio upload and blocks until remote
// processing and scoring complete or fail.
func (h *Handler) processAudio(c *gin.Context) {
	fileHeader, err := c.FormFile(audioFileField)
	if err != nil {
		RespondWithError(c, apperrors.InvalidInput(audioFileField, "multipart file field is required").WithCause(err))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAudioExtensions[ext] {
		RespondWithError(c, apperrors.InvalidInput(audioFileField, "unsupported audio format, expected wav, mp3 or m4a"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondWithError(c, apperrors.InvalidInput(audioFileField, "could not read upload").WithCause(err))
		return
	}

	h.log.Info("processing audio upload", map[string]interface{}{
		"filename": fileHeader.Filename,
		"size":     len(data),
	})

	result, err := h.svc.ProcessAudio(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"service":   h.serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) version(c *gin.Context) {
	v := version.GetVersionInfo()
	c.JSON(200, gin.H{
		"version":    v.Version,
		"git_commit": v.GitCommit,
		"build_time": v.BuildTime,
		"go_version": v.GoVersion,
	})
}
