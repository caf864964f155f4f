package govmap

import "context"

// SchemaPlaceholder is the schema marker the Content API uses for
// unmigrated content.
const SchemaPlaceholder = "placeholder"

// ContentRecord is a single document returned by the Content API.
// Field names mirror the API's JSON representation.
type ContentRecord struct {
	BasePath     string       `json:"base_path"`
	DocumentType string       `json:"document_type"`
	SchemaName   string       `json:"schema_name"`
	Title        string       `json:"title"`
	Body         string       `json:"body"`
	UpdatedAt    string       `json:"updated_at"`
	Links        ContentLinks `json:"links"`
}

// ContentLinks groups the link relations govmap cares about. The API
// exposes many more relation categories; unknown ones are ignored.
type ContentLinks struct {
	Organisations  []ContentLink `json:"organisations"`
	Children       []ContentLink `json:"children"`
	RelatedItems   []ContentLink `json:"related_items"`
	RelatedGuides  []ContentLink `json:"related_guides"`
	RelatedContent []ContentLink `json:"related_content"`
}

// ContentLink is a reference to another content record.
type ContentLink struct {
	Title    string `json:"title"`
	BasePath string `json:"base_path"`
}

// IsPlaceholder reports whether the record is placeholder or unmigrated
// content: missing title or body, or an explicit placeholder schema.
func (r *ContentRecord) IsPlaceholder() bool {
	if r.Title == "" || r.Body == "" {
		return true
	}
	return r.SchemaName == SchemaPlaceholder
}

// RelatedLinks returns the base paths of every related-content relation,
// aggregated across related_items, related_guides and related_content.
func (r *ContentRecord) RelatedLinks() []string {
	var paths []string
	for _, group := range [][]ContentLink{
		r.Links.RelatedItems,
		r.Links.RelatedGuides,
		r.Links.RelatedContent,
	} {
		for _, link := range group {
			if link.BasePath != "" {
				paths = append(paths, link.BasePath)
			}
		}
	}
	return paths
}

// PublishingOrg returns the title of the first publishing organisation,
// or "" if the record has none.
func (r *ContentRecord) PublishingOrg() string {
	if len(r.Links.Organisations) == 0 {
		return ""
	}
	return r.Links.Organisations[0].Title
}

// ContentSource retrieves content records by path.
//
// Errors carry application codes: ENOTFOUND for missing content,
// ERATELIMIT when the upstream asks us to slow down, EUNAVAILABLE for
// transient network failures and EINVALID for malformed responses.
type ContentSource interface {
	// GetContent fetches the record at the given root-relative path.
	GetContent(ctx context.Context, path string) (*ContentRecord, error)
}
