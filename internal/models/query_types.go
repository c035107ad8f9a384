// internal/models/query_types.go
package models

// QueryType names a catalog or profile lookup handled by the
// query-opportunities worker. Each value maps to a registered query
// builder.
type QueryType string

const (
	QueryTypeOpportunityFullDetails QueryType = "opportunity_full_details"
	QueryTypeOpportunitiesByTag     QueryType = "opportunities_by_tag"
	QueryTypeOpportunitiesUpcoming  QueryType = "opportunities_upcoming"
	QueryTypeApplicantProfile       QueryType = "applicant_profile"
	QueryTypeApplicantReports       QueryType = "applicant_reports"
)
