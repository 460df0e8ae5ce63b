// Package handlers wires the scan pipeline to HTTP. Routes mirror the
// original frontend contract: the /api/scan endpoints, the /scan
// convenience endpoint with a mode field, a liveness probe, and the
// static frontend pages.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/lifescan/internal/scan"
	"github.com/example/lifescan/internal/usecase"
)

const (
	cognitivePage = "cognitive_scan.html"
	physicalPage  = "physical_scan.html"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type handler struct {
	uc        *usecase.ScanUseCase
	staticDir string
	logger    *zap.Logger
}

// RegisterRoutes mounts all endpoints on the router. staticDir may be
// empty to disable frontend serving (headless deployments, tests).
func RegisterRoutes(r *gin.Engine, uc *usecase.ScanUseCase, staticDir string, logger *zap.Logger) {
	h := &handler{uc: uc, staticDir: staticDir, logger: logger}

	r.GET("/api/health", h.health)
	r.POST("/api/scan/physical", h.scanMode(scan.ModePhysical))
	r.POST("/api/scan/cognitive", h.scanMode(scan.ModeCognitive))
	r.POST("/scan", h.scan)
	r.POST("/api/vision/debug", h.visionDebug)

	if staticDir != "" {
		abs, err := filepath.Abs(staticDir)
		if err == nil {
			h.staticDir = abs
		}
		r.GET("/", h.page(cognitivePage))
		r.GET("/physical", h.page(physicalPage))
		r.NoRoute(h.static)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lifescan-backend"})
}

func (h *handler) scanMode(mode scan.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.runScan(c, mode)
	}
}

// scan is the convenience endpoint the older frontend posts to. The
// mode form field defaults to cognitive.
func (h *handler) scan(c *gin.Context) {
	mode, err := scan.ParseMode(strings.ToLower(c.PostForm("mode")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	h.runScan(c, mode)
}

func (h *handler) runScan(c *gin.Context, mode scan.Mode) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.uc.Scan(c.Request.Context(), mode, filename, data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// visionDebug returns the raw extractor output for an upload, skipping
// the scorer and narrator.
func (h *handler) visionDebug(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	features, err := h.uc.ExtractFeatures(c.Request.Context(), filename, data)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vision": features})
}

func (h *handler) readUpload(c *gin.Context) (string, []byte, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "No image uploaded"})
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "Failed to read upload"})
		return "", nil, false
	}
	return header.Filename, data, true
}

// writeError classifies pipeline errors. Client mistakes get the real
// message; backend failures are logged in full and returned generically.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scan.ErrUnsupportedFileType),
		errors.Is(err, scan.ErrEmptyFile),
		errors.Is(err, scan.ErrInvalidMode):
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		h.logger.Error("scan pipeline failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Internal error"})
	}
}

func (h *handler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(h.staticDir, name))
	}
}

// static serves frontend assets for any unmatched GET path. The resolved
// path must stay inside the static root; escapes are rejected.
func (h *handler) static(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "Not found"})
		return
	}

	path, ok := h.resolveStatic(c.Request.URL.Path)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "Not found"})
		return
	}
	c.File(path)
}

func (h *handler) resolveStatic(urlPath string) (string, bool) {
	rel := filepath.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	path := filepath.Join(h.staticDir, rel)

	if path != h.staticDir && !strings.HasPrefix(path, h.staticDir+string(filepath.Separator)) {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
