package api

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"rsift/app/cfg"
	"rsift/app/feed"
)

type Handler struct {
	processor *feed.Processor
}

func NewHandler(processor *feed.Processor) *Handler {
	return &Handler{processor: processor}
}

// GetFeed serves the most recently filtered document.
func (h *Handler) GetFeed(c *gin.Context) {
	data, err := os.ReadFile(h.processor.OutputPath())
	if err != nil {
		slog.Error("Filtered feed not available", "path", h.processor.OutputPath(), "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, string(data))
}

// Refilter re-runs the pipeline on demand.
func (h *Handler) Refilter(c *gin.Context) {
	if err := h.processor.Run(); err != nil {
		slog.Error("Re-filtering failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Re-filtering failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feed re-filtered",
		"output":  h.processor.OutputPath(),
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": cfg.Get().Version,
	})
}
