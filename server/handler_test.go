package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/juniorwebdev83/auto-qa/errors"
	"github.com/juniorwebdev83/auto-qa/logger"
	"github.com/juniorwebdev83/auto-qa/qa"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProcessor struct {
	result   *qa.Result
	err      error
	calls    int
	audio    []byte
	filename string
}

func (f *fakeProcessor) ProcessAudio(_ context.Context, audio []byte, filename string) (*qa.Result, error) {
	f.calls++
	f.audio = audio
	f.filename = filename
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestEngine(t *testing.T, proc AudioProcessor) *gin.Engine {
	t.Helper()
	engine := gin.New()
	h := NewHandler("auto-qa", proc, logger.NewDefault("test"))
	h.Register(engine)
	return engine
}

func multipartAudio(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &buf, w.FormDataContentType()
}

func decodeErrorCode(t *testing.T, body []byte) apperrors.ErrorCode {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decoding error response: %v (body: %s)", err, body)
	}
	return resp.Error.Code
}

func TestProcessAudioEndpoint(t *testing.T) {
	proc := &fakeProcessor{
		result: &qa.Result{
			InteractionID: "int-1",
			Transcription: "Hi, my name is Alex. How may I help you?",
			QAScore:       10,
			MaxScore:      60,
		},
	}
	engine := newTestEngine(t, proc)

	body, contentType := multipartAudio(t, audioFileField, "call.wav", []byte("riff-data"))
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res qa.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if res.QAScore != 10 || res.Transcription == "" {
		t.Errorf("result = %+v", res)
	}
	if string(proc.audio) != "riff-data" || proc.filename != "call.wav" {
		t.Errorf("processor got (%q, %q)", proc.audio, proc.filename)
	}
}

func TestProcessAudioMissingFile(t *testing.T) {
	proc := &fakeProcessor{}
	engine := newTestEngine(t, proc)

	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want %v", code, apperrors.ErrCodeInvalidInput)
	}
	if proc.calls != 0 {
		t.Errorf("processor calls = %d, want 0", proc.calls)
	}
}

func TestProcessAudioRejectsUnsupportedFormat(t *testing.T) {
	proc := &fakeProcessor{}
	engine := newTestEngine(t, proc)

	body, contentType := multipartAudio(t, audioFileField, "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if proc.calls != 0 {
		t.Errorf("processor calls = %d, want 0", proc.calls)
	}
}

func TestProcessAudioLifecycleErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{"unauthorized", apperrors.Unauthorized("ElevateAI"), http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"remote failed", apperrors.RemoteFailed("processingFailed"), http.StatusBadGateway, apperrors.ErrCodeRemoteFailed},
		{"timed out", apperrors.TimedOut("5m0s"), http.StatusGatewayTimeout, apperrors.ErrCodeTimedOut},
		{"empty result", apperrors.EmptyResult("int-1"), http.StatusBadGateway, apperrors.ErrCodeEmptyResult},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(t, &fakeProcessor{err: tc.err})

			body, contentType := multipartAudio(t, audioFileField, "call.mp3", []byte("data"))
			req := httptest.NewRequest(http.MethodPost, "/api/process-audio", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if code := decodeErrorCode(t, rec.Body.Bytes()); code != tc.wantCode {
				t.Errorf("code = %v, want %v", code, tc.wantCode)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(t, &fakeProcessor{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health body: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "auto-qa" {
		t.Errorf("body = %v", body)
	}
}

func TestVersionEndpoint(t *testing.T) {
	engine := newTestEngine(t, &fakeProcessor{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding version body: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("version field missing")
	}
}
