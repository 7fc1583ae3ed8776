package capture

import (
	"sync"

	"brand-audit-pipeline/metrics"
	"brand-audit-pipeline/models"
)

// Collector accumulates records delivered out-of-band (e.g. from the
// RabbitMQ subscriber) until an audit is requested.
type Collector struct {
	mu      sync.Mutex
	records []models.ResponseRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends one record.
func (c *Collector) Add(record models.ResponseRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
	metrics.CollectedRecords.Set(float64(len(c.records)))
}

// Len returns the number of collected records.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Snapshot returns a copy of the collected records in arrival order.
func (c *Collector) Snapshot() []models.ResponseRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]models.ResponseRecord, len(c.records))
	copy(records, c.records)
	return records
}

// Reset drops all collected records.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	metrics.CollectedRecords.Set(0)
}
