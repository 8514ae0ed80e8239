package server

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

// Static file responses
const (
	IndexFile          = "index.html"
	MsgInvalidPath     = "Invalid path"
	MsgFileNotFound    = "File not found"
	DefaultContentType = "application/octet-stream"
)

// resolveStatic maps a request path onto the static root, "" when it escapes
func resolveStatic(requestPath string) (string, bool) {
	requested := strings.TrimLeft(requestPath, "/")
	if requested == "" {
		requested = IndexFile
	}

	cleaned := path.Clean(requested)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return "", false
	}
	return "/" + cleaned, true
}

func (s *Server) serveStatic(c *gin.Context) {
	target, ok := resolveStatic(c.Request.URL.Path)
	if !ok {
		c.String(http.StatusNotFound, MsgInvalidPath)
		return
	}

	info, err := s.opts.Static.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		c.String(http.StatusNotFound, MsgFileNotFound)
		return
	}

	body, err := afero.ReadFile(s.opts.Static, target)
	if err != nil {
		c.String(http.StatusNotFound, MsgFileNotFound)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(target))
	if contentType == "" {
		contentType = DefaultContentType
	}
	c.Data(http.StatusOK, contentType, body)
}

// StaticFS sandboxes root for serving; nothing outside it is reachable
func StaticFS(fs afero.Fs, root string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(fs, root))
}
