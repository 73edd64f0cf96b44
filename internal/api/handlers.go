// Package api exposes the practice service as JSON procedures over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sadopc/swimlog/internal/observability"
	"github.com/sadopc/swimlog/internal/practice"
)

// Handler exposes HTTP handlers for the practice procedures.
type Handler struct {
	service *practice.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler constructs a Handler. A nil logger uses slog.Default().
func NewHandler(service *practice.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger, now: time.Now}
}

// CreatePractice handles POST /rpc/createPractice.
func (h *Handler) CreatePractice(c *gin.Context) {
	var req CreatePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeError(c, err)
		return
	}

	rec, err := h.service.CreatePractice(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	observability.RecordPracticeCreated(rec)
	c.JSON(http.StatusCreated, toPracticeView(rec))
}

// ListPractices handles GET /rpc/listPractices.
func (h *Handler) ListPractices(c *gin.Context) {
	var q ListPracticesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, err)
		return
	}
	filter, err := q.toFilter()
	if err != nil {
		h.writeError(c, err)
		return
	}

	records, err := h.service.ListPractices(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPracticeViews(records))
}

// GetPractice handles GET /rpc/getPractice?id=. An unknown id yields null.
func (h *Handler) GetPractice(c *gin.Context) {
	id, err := parseRecordID(c.Query("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if id.OutOfRange {
		c.JSON(http.StatusOK, nil)
		return
	}

	rec, err := h.service.GetPractice(c.Request.Context(), id.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPracticeView(rec))
}

// UpdatePractice handles POST /rpc/updatePractice. An unknown id yields null.
func (h *Handler) UpdatePractice(c *gin.Context) {
	var req UpdatePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeError(c, err)
		return
	}
	if req.ID.OutOfRange {
		c.JSON(http.StatusOK, nil)
		return
	}

	rec, err := h.service.UpdatePractice(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPracticeView(rec))
}

// DeletePractice handles POST /rpc/deletePractice.
func (h *Handler) DeletePractice(c *gin.Context) {
	var req IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	if req.ID.OutOfRange {
		c.JSON(http.StatusOK, DeleteResponse{Deleted: false})
		return
	}

	deleted, err := h.service.DeletePractice(c.Request.Context(), req.ID.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

// GetStatistics handles GET /rpc/getStatistics.
func (h *Handler) GetStatistics(c *gin.Context) {
	var q StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, err)
		return
	}
	rng, err := parseRange(q.DateFrom, q.DateTo)
	if err != nil {
		h.writeError(c, err)
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), rng)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now().UTC()})
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Type: "validation_failed", Detail: describeBindError(err)})
}

// writeError maps domain validation failures to 400 and everything else to
// 500. Store errors were already logged by the service.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *practice.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Type: "validation_failed", Detail: verr.Error()})
		return
	}
	h.logger.Debug("request failed", "path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Type: "server_error", Detail: "internal error"})
}
