package domain

import "time"

// Audited tables.
const (
	AuditLexiconEntries = "lexicon_entries"
	AuditTranslations   = "translations"
)

// AuditRecord is one row written by the audit trigger.
type AuditRecord struct {
	ID        int64
	TableName string
	RowID     int64
	Action    string
	UserKey   *int64
	ChangedAt time.Time
}
