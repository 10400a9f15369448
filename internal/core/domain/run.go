package domain

import "time"

// RunMode selects the work subset for a batch run.
type RunMode string

const (
	// RunModeSelective skips products already sniffed as enriched.
	RunModeSelective RunMode = "selective"
	// RunModeExhaustive reprocesses every product unconditionally.
	RunModeExhaustive RunMode = "exhaustive"
)

func ParseRunMode(raw string) (RunMode, bool) {
	switch RunMode(raw) {
	case RunModeSelective, RunModeExhaustive:
		return RunMode(raw), true
	default:
		return "", false
	}
}

// RunStatus is the terminal condition reported when a run leaves Running.
type RunStatus string

const (
	RunStatusCompleted   RunStatus = "completed"
	RunStatusCancelled   RunStatus = "cancelled"
	RunStatusNothingToDo RunStatus = "nothing_to_do"
)

// RunProgress is the per-item progress snapshot published before each
// product is processed.
type RunProgress struct {
	RunID           string `json:"run_id"`
	Total           int    `json:"total"`
	Current         int    `json:"current"`
	CurrentProduct  string `json:"current_product"`
	AlreadyEnriched int    `json:"already_enriched"`
}

// RunSummary describes one finished batch run.
type RunSummary struct {
	RunID           string        `json:"run_id"`
	Mode            RunMode       `json:"mode"`
	Status          RunStatus     `json:"status"`
	Total           int           `json:"total"`
	Processed       int           `json:"processed"`
	Failed          int           `json:"failed"`
	AlreadyEnriched int           `json:"already_enriched"`
	Duration        time.Duration `json:"duration"`
	Message         string        `json:"message"`
}

// RunRequest asks a headless worker to enrich a saved catalog.
type RunRequest struct {
	CatalogID string  `json:"catalog_id"`
	Mode      RunMode `json:"mode"`
}
