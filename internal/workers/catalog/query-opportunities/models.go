// internal/workers/catalog/query-opportunities/models.go
package queryopportunities

import "pathway-workers/internal/models"

type Input struct {
	QueryType     string                 `json:"queryType"`
	OpportunityID string                 `json:"opportunityId,omitempty"`
	ApplicantID   string                 `json:"applicantId,omitempty"`
	Tag           string                 `json:"tag,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType
