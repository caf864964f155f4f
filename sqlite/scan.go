package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/govmap"
)

// Compile-time interface verification.
var _ govmap.ScanService = (*ScanService)(nil)

// ScanService implements govmap.ScanService using SQLite.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan persists a completed scan with its sections and pages in
// one transaction.
func (s *ScanService) CreateScan(ctx context.Context, scan *govmap.Scan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	scan.ID = uuid.New().String()
	scan.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scans (id, created_at, started_at, depth_limit, total_pages, sections_covered, rate_limit_pauses)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, scan.ID, scan.CreatedAt.Format(time.RFC3339), scan.Metadata.StartedAt.Format(time.RFC3339),
		scan.Metadata.DepthLimit, scan.Metadata.TotalPages, scan.Metadata.SectionsCovered,
		scan.Metadata.RateLimitPauses)
	if err != nil {
		return err
	}

	for path, section := range scan.Sections {
		sectionID := uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sections (id, scan_id, path, total_pages, active_pages, placeholder_pages)
			VALUES (?, ?, ?, ?, ?, ?)
		`, sectionID, scan.ID, path, section.TotalPages, section.ActivePages, section.PlaceholderPages)
		if err != nil {
			return err
		}

		for i, page := range section.Pages {
			links, err := json.Marshal(page.RelatedLinks)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO pages (id, section_id, position, path, content_type, last_updated, status, depth_level, publishing_org, related_links, content_hash)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, uuid.New().String(), sectionID, i, page.Path, page.ContentType, page.LastUpdated,
				string(page.Status), page.DepthLevel, page.PublishingOrg, string(links), page.ContentHash)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindScanByID retrieves a scan with its sections and pages.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*govmap.Scan, error) {
	scan, err := s.scanRow(ctx, id)
	if err != nil {
		return nil, err
	}

	scan.Sections = make(map[string]*govmap.Section)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path FROM sections WHERE scan_id = ? ORDER BY path
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type sectionRow struct {
		id   string
		path string
	}
	var sectionRows []sectionRow
	for rows.Next() {
		var sr sectionRow
		if err := rows.Scan(&sr.id, &sr.path); err != nil {
			return nil, err
		}
		sectionRows = append(sectionRows, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, sr := range sectionRows {
		section, err := s.loadSection(ctx, sr.id)
		if err != nil {
			return nil, err
		}
		scan.Sections[sr.path] = section
	}

	return scan, nil
}

// loadSection rebuilds a section aggregate from its stored pages.
// Counters and the depth histogram are recomputed through Record, which
// keeps the total-equals-sum invariant on the way out of storage too.
func (s *ScanService) loadSection(ctx context.Context, sectionID string) (*govmap.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, content_type, last_updated, status, depth_level, publishing_org, related_links, content_hash
		FROM pages
		WHERE section_id = ?
		ORDER BY position
	`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	section := govmap.NewSection()
	for rows.Next() {
		var page govmap.Page
		var status, links string
		if err := rows.Scan(&page.Path, &page.ContentType, &page.LastUpdated, &status,
			&page.DepthLevel, &page.PublishingOrg, &links, &page.ContentHash); err != nil {
			return nil, err
		}
		page.Status = govmap.PageStatus(status)
		if err := json.Unmarshal([]byte(links), &page.RelatedLinks); err != nil {
			return nil, fmt.Errorf("failed to parse related links: %w", err)
		}
		section.Record(&page)
	}
	return section, rows.Err()
}

// FindScans retrieves scan summaries matching the filter, newest first.
func (s *ScanService) FindScans(ctx context.Context, filter govmap.ScanFilter) ([]*govmap.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, created_at, started_at, depth_limit, total_pages, sections_covered, rate_limit_pauses
		FROM scans WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*govmap.Scan
	for rows.Next() {
		scan, err := scanFromRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

// DeleteScan permanently removes a scan and its pages.
func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return govmap.Errorf(govmap.ENOTFOUND, "scan not found")
	}
	return nil
}

// scanRow loads a single scan summary row.
func (s *ScanService) scanRow(ctx context.Context, id string) (*govmap.Scan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, started_at, depth_limit, total_pages, sections_covered, rate_limit_pauses
		FROM scans WHERE id = ?
	`, id)

	scan, err := scanFromRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, govmap.Errorf(govmap.ENOTFOUND, "scan not found")
	}
	return scan, err
}

// scanFromRow scans a scans-table row into a Scan.
func scanFromRow(scanFn func(...any) error) (*govmap.Scan, error) {
	var scan govmap.Scan
	var createdAt, startedAt string

	if err := scanFn(&scan.ID, &createdAt, &startedAt, &scan.Metadata.DepthLimit,
		&scan.Metadata.TotalPages, &scan.Metadata.SectionsCovered,
		&scan.Metadata.RateLimitPauses); err != nil {
		return nil, err
	}

	var parseErr error
	scan.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
	}
	scan.Metadata.StartedAt, parseErr = time.Parse(time.RFC3339, startedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", parseErr)
	}

	return &scan, nil
}
