package lifecycle

import (
	"bytes"
	"io"
	"os"
)

// AudioSource supplies the audio payload for upload. Open is called exactly
// once per run, immediately before the upload call, and the returned reader
// is closed as soon as the call returns regardless of outcome. Runs that
// fail before the upload step never open the source.
type AudioSource interface {
	Open() (io.ReadCloser, error)
}

type bytesSource struct {
	data []byte
}

// BytesSource wraps an in-memory audio payload.
func BytesSource(data []byte) AudioSource {
	return bytesSource{data: data}
}

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

type fileSource struct {
	path string
}

// FileSource opens the audio file at path when the upload step runs.
func FileSource(path string) AudioSource {
	return fileSource{path: path}
}

func (s fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}
