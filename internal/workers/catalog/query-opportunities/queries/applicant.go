// internal/workers/catalog/query-opportunities/queries/applicant.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func ApplicantProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	applicantID, ok := params["applicantId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, academicLevel, fieldOfStudy, gpaScale, countryOfOrigin string
	var gpa, ieltsScore, toeflScore, workExperienceYears sql.NullFloat64
	var age sql.NullInt64
	var demographics []byte

	err := db.QueryRowContext(ctx, `
		SELECT id, academic_level, field_of_study, gpa, gpa_scale,
		       ielts_score, toefl_score, age, work_experience_years,
		       country_of_origin, demographics
		FROM applicant_profiles
		WHERE id = $1`, applicantID).Scan(
		&id, &academicLevel, &fieldOfStudy,
		&gpa, &gpaScale,
		&ieltsScore, &toeflScore,
		&age, &workExperienceYears,
		&countryOfOrigin, &demographics,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                  id,
		"academicLevel":       academicLevel,
		"fieldOfStudy":        fieldOfStudy,
		"gpa":                 nullFloat(gpa),
		"gpaScale":            gpaScale,
		"ieltsScore":          nullFloat(ieltsScore),
		"toeflScore":          nullFloat(toeflScore),
		"age":                 nullInt(age),
		"workExperienceYears": nullFloat(workExperienceYears),
		"countryOfOrigin":     countryOfOrigin,
		"demographics":        decodeJSON(demographics),
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func ApplicantReports(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	applicantID, ok := params["applicantId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, applicant_id, summary, created_at
		FROM eligibility_reports
		WHERE applicant_id = $1
		ORDER BY created_at DESC`, applicantID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, applicantId, createdAt string
		var summary []byte
		if err := rows.Scan(&id, &applicantId, &summary, &createdAt); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":          id,
			"applicantId": applicantId,
			"summary":     decodeJSON(summary),
			"createdAt":   createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func nullFloat(v sql.NullFloat64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func nullInt(v sql.NullInt64) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Int64
}
