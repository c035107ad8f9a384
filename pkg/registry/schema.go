// pkg/registry/schema.go

// Package registry describes the catalog of worker activities the
// eligibility engine exposes to BPMN process designers.
// configs/activity-registry.json is the checked-in source of truth;
// the registry-updater and worker-generator tools read and write it
// through this package.
package registry

// ActivityRegistry is the top-level registry document.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity is one BPMN service task implemented by a worker package.
// Category matches the worker directory under internal/workers
// (eligibility, profile, catalog, notification) and TaskType is the
// Zeebe job type the worker subscribes to.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}
