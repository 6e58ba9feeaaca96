package handlers

import (
	"context"
	"log/slog"

	"urlguard/internal/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Servicer
	Log     *slog.Logger
}

type Servicer interface {
	Check(ctx context.Context, rawURL string) (*models.CheckResponse, error)
	Status(ctx context.Context, checkID string) (*models.CheckResponse, error)
}

func NewHandler(srv Servicer, log *slog.Logger) *Handler {
	return &Handler{
		service: srv,
		Log:     log,
	}
}

func (h *Handler) CreateCheck(c *gin.Context) {
	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Log.Error("invalid request", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))

		c.JSON(400, models.ErrorResponse{
			Request: c.Request.URL.Path,
			Error:   err.Error(),
		})
		return
	}

	res, err := h.service.Check(c.Request.Context(), req.URL)
	if err != nil {
		h.Log.Error("check failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))

		c.JSON(500, models.ErrorResponse{
			Request: c.Request.URL.Path,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(200, res)
}

func (h *Handler) GetStatusCheck(c *gin.Context) {
	checkID := c.Param("id")

	res, err := h.service.Status(c.Request.Context(), checkID)
	if err != nil {
		c.JSON(404, models.ErrorResponse{
			Request: c.Request.URL.Path,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(200, res)
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
