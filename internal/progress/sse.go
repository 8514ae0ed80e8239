package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ContentType of a server-sent event stream
const ContentType = "text/event-stream"

// SSEWriter frames events as "data: <json>\n\n" and flushes each one
type SSEWriter struct {
	w       io.Writer
	flusher http.Flusher
}

// NewSSEWriter wraps w; w is flushed after each frame when it is an http.Flusher
func NewSSEWriter(w io.Writer) *SSEWriter {
	flusher, _ := w.(http.Flusher)
	return &SSEWriter{w: w, flusher: flusher}
}

// Send writes one frame
func (s *SSEWriter) Send(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", ev.Kind(), err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
