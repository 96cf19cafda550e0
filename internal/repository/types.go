package repository

import "time"

// DocumentListFilter narrows document list queries.
type DocumentListFilter struct {
	Page        int
	PageSize    int
	SDN         string
	DIC         string
	SuppAddCode string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PartListFilter narrows part list queries.
type PartListFilter struct {
	Page     int
	PageSize int
	NSN      string
	Search   string
}
