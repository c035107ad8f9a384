// internal/workers/catalog/search-opportunities/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// OpportunityQuery defines the structure of a search request
type OpportunityQuery struct {
	Index         string
	QueryType     string
	Filters       map[string]interface{}
	OpportunityID string
	Tag           string
	Pagination    struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, oq OpportunityQuery) (*esapi.SearchRequest, error) {
	if oq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch oq.QueryType {
	case "opportunity_index":
		queryBody = buildOpportunitySearchQuery(oq)
	case "related_opportunities":
		queryBody = buildRelatedOpportunitiesQuery(oq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, oq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{oq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &oq.Pagination.From,
		Size:   &oq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

func buildOpportunitySearchQuery(oq OpportunityQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Keyword search
	if keywords, ok := oq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "provider^2", "tags"},
				"type":   "best_fields",
			},
		})
	}

	// Tag filter
	if tag, ok := oq.Filters["tag"].(string); ok && tag != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"tags": tag},
		})
	} else if oq.Tag != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"tags": oq.Tag},
		})
	}

	// Amount range filter
	if amountRange, ok := oq.Filters["amountRange"].(map[string]interface{}); ok {
		rangeClause := map[string]interface{}{}
		if min, exists := toFloat(amountRange["min"]); exists && min > 0 {
			rangeClause["gte"] = min
		}
		if max, exists := toFloat(amountRange["max"]); exists && max > 0 {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"amount": rangeClause},
			})
		}
	}

	// Deadline window: only opportunities still open on or after the given date
	if deadlineAfter, ok := oq.Filters["deadlineAfter"].(string); ok && deadlineAfter != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"deadline": map[string]interface{}{"gte": deadlineAfter},
			},
		})
	}

	// Default match_all if no keyword
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := oq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "amount":
			query["sort"] = []map[string]interface{}{{"amount": "desc"}}
		case "deadline":
			query["sort"] = []map[string]interface{}{{"deadline": "asc"}}
		}
	}

	return query
}

// buildRelatedOpportunitiesQuery builds a "similar scholarships" query
func buildRelatedOpportunitiesQuery(oq OpportunityQuery) map[string]interface{} {
	if oq.OpportunityID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"name", "provider", "tags"},
				"like": []map[string]interface{}{
					{"_index": oq.Index, "_id": oq.OpportunityID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
