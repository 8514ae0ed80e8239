package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer Setup("info", false, nil)

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		Setup(tt.level, false, &bytes.Buffer{})
		if got := logrus.GetLevel(); got != tt.want {
			t.Errorf("Setup(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSetup_JSON(t *testing.T) {
	defer Setup("info", false, nil)

	var buf bytes.Buffer
	Setup("info", true, &buf)
	logrus.WithField("session", "abc").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["session"] != "abc" || entry["msg"] != "hello" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	r := gin.New()
	r.Use(Middleware(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	if !strings.Contains(out, "path=/ok") || !strings.Contains(out, "status=200") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.Contains(out, "level=error") || !strings.Contains(out, "status=500") {
		t.Errorf("missing failure line: %q", out)
	}
}
