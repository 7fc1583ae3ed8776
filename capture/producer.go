// Package capture is the boundary to the response-capture side of the
// pipeline. The capture automation itself lives elsewhere; this package only
// consumes what it produces: a results JSON file, or records arriving over a
// queue.
package capture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"

	"brand-audit-pipeline/models"
)

// Producer yields captured response records from some source.
type Producer interface {
	Records() ([]models.ResponseRecord, error)
}

// FileProducer reads records from a capture results JSON file.
type FileProducer struct {
	Path string
}

// Records loads and parses the results file.
func (p *FileProducer) Records() ([]models.ResponseRecord, error) {
	return LoadResultsFile(p.Path)
}

// LoadResultsFile reads a capture results document of the form
// {"results": [...]}. Unknown per-record fields are ignored.
func LoadResultsFile(path string) ([]models.ResponseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file %s: %w", path, err)
	}

	var results models.CaptureResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("invalid responses file %s: %w", path, err)
	}

	log.Infof("Loaded %d responses from %s", len(results.Results), path)
	return results.Results, nil
}
