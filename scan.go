package govmap

import (
	"context"
	"time"
)

// Scan is a completed crawl run persisted for later inspection.
type Scan struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Metadata  ScanMetadata        `json:"metadata"`
	Sections  map[string]*Section `json:"sections"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if len(s.Sections) == 0 {
		return Errorf(EINVALID, "scan requires at least one section")
	}
	return nil
}

// ScanService represents a service for managing persisted scans.
type ScanService interface {
	// CreateScan persists a completed scan.
	CreateScan(ctx context.Context, scan *Scan) error

	// FindScanByID retrieves a scan with its sections and pages.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scan summaries matching the filter,
	// newest first. Sections are not populated.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)

	// DeleteScan permanently removes a scan and its pages.
	// Returns ENOTFOUND if the scan does not exist.
	DeleteScan(ctx context.Context, id string) error
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
