package domain

// ExportRow is a single row in the full-data export.
// It is a flat view: one row per tagged entity, contacts first, then
// organizations.
//
// Tags holds the display names of the entity's tags, in TagSet.Values order.
// Callers that need a joined string (e.g. CSV) should join with "|".
type ExportRow struct {
	Kind   string // "contact" or "organization"
	ID     string
	Name   string
	Detail string // email for contacts, domain for organizations
	Tags   []string
}

// Export row kinds.
const (
	KindContact      = "contact"
	KindOrganization = "organization"
)
