// internal/workers/catalog/sync-pathway-programs/models.go
package syncpathwayprograms

type Input struct {
	ModifiedSince string `json:"modifiedSince,omitempty"` // RFC3339, empty for full sync
	MaxPages      int    `json:"maxPages,omitempty"`
}

type Output struct {
	ProgramsFetched  int    `json:"programsFetched"`
	ProgramsUpserted int    `json:"programsUpserted"`
	ProgramsSkipped  int    `json:"programsSkipped"`
	PagesProcessed   int    `json:"pagesProcessed"`
	SyncedAt         string `json:"syncedAt"` // ISO 8601
}
