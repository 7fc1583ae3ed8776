package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"brand-audit-pipeline/audit"
	"brand-audit-pipeline/capture"
	"brand-audit-pipeline/database"
	"brand-audit-pipeline/metrics"
	"brand-audit-pipeline/models"
)

// Handlers represents the HTTP handlers
type Handlers struct {
	auditor   *audit.Auditor
	collector *capture.Collector
	store     *database.AuditStore
}

// NewHandlers creates new HTTP handlers. store may be nil when persistence
// is not configured.
func NewHandlers(auditor *audit.Auditor, collector *capture.Collector, store *database.AuditStore) *Handlers {
	return &Handlers{auditor: auditor, collector: collector, store: store}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   "brand-audit-pipeline",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// RunAudit audits the capture results document in the request body and
// responds with the full report.
func (h *Handlers) RunAudit(c *gin.Context) {
	var results models.CaptureResults
	if err := c.ShouldBindJSON(&results); err != nil {
		metrics.AuditsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid capture results payload",
		})
		return
	}

	report := h.auditor.Audit("api-request", results.Results)
	h.persist(c, report)
	metrics.AuditsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, report)
}

// CollectedCount reports how many queue-fed records are waiting for audit.
func (h *Handlers) CollectedCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"collected_records": h.collector.Len(),
	})
}

// AuditCollected audits the records accumulated from the capture queue.
// ?reset=true drops the buffer afterwards.
func (h *Handlers) AuditCollected(c *gin.Context) {
	records := h.collector.Snapshot()
	report := h.auditor.Audit("capture-queue", records)
	if c.Query("reset") == "true" {
		h.collector.Reset()
	}
	h.persist(c, report)
	metrics.AuditsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, report)
}

// RecentRuns returns the most recent persisted run summaries.
func (h *Handlers) RecentRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Audit persistence is not configured",
		})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = n
	}

	runs, err := h.store.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to query audit runs",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// persist saves the report when a store is configured. Persistence failures
// do not fail the request; the report is still returned.
func (h *Handlers) persist(c *gin.Context, report *models.AuditReport) {
	if h.store == nil {
		return
	}
	if _, err := h.store.SaveReport(c.Request.Context(), report); err != nil {
		log.Errorf("Failed to persist audit run: %v", err)
		metrics.AuditsTotal.WithLabelValues("persist_error").Inc()
	}
}
