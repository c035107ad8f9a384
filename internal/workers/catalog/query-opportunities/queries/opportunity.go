// internal/workers/catalog/query-opportunities/queries/opportunity.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func OpportunityFullDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	opportunityID, ok := params["opportunityId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, name, provider, currency, deadline string
	var amount float64
	var active bool
	var tags, criteria []byte
	var createdAt, updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, name, provider, amount, currency, deadline,
		       active, tags, criteria, created_at, updated_at
		FROM opportunities
		WHERE id = $1`, opportunityID).Scan(
		&id, &name, &provider,
		&amount, &currency, &deadline,
		&active, &tags, &criteria,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":        id,
		"name":      name,
		"provider":  provider,
		"amount":    amount,
		"currency":  currency,
		"deadline":  deadline,
		"active":    active,
		"tags":      decodeJSON(tags),
		"criteria":  decodeJSON(criteria),
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func OpportunitiesByTag(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	tag, ok := params["tag"].(string)
	if !ok || tag == "" {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, provider, amount, currency, deadline
		FROM opportunities
		WHERE active = true AND tags ? $1
		ORDER BY amount DESC`, tag)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func OpportunitiesUpcoming(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	days := 30
	if d, ok := params["withinDays"].(float64); ok && d > 0 {
		days = int(d)
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, provider, amount, currency, deadline
		FROM opportunities
		WHERE active = true
		  AND deadline::date BETWEEN CURRENT_DATE AND CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY deadline ASC`, days)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	results, err := scanOpportunityRows(rows)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func scanOpportunityRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	var results []map[string]interface{}
	for rows.Next() {
		var id, name, provider, currency, deadline string
		var amount float64
		if err := rows.Scan(&id, &name, &provider, &amount, &currency, &deadline); err != nil {
			return nil, err
		}
		results = append(results, map[string]interface{}{
			"id":       id,
			"name":     name,
			"provider": provider,
			"amount":   amount,
			"currency": currency,
			"deadline": deadline,
		})
	}
	return results, rows.Err()
}

func decodeJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
