package migration

import (
	"oraflake/internal/dbt"
)

// Options configures one migration batch. Files wins over SourceDir when both
// are set; SourceDir is scanned for *.sql files in name order.
type Options struct {
	SourceDir       string
	Files           []string
	OutputDir       string
	Materialization dbt.Materialization
	UniqueKey       string
	SkipValidation  bool
	WriteSummary    bool
	DryRun          bool
}

// Status classifies the outcome for one input file. Skipped means the file
// was rejected by the statement gate; Failed means it could not be read or
// its model could not be written.
type Status string

const (
	StatusConverted Status = "CONVERTED"
	StatusSkipped   Status = "SKIPPED"
	StatusFailed    Status = "FAILED"
)

// FileResult records the outcome for a single input file
type FileResult struct {
	SourceFile   string
	ModelName    string
	OutputPath   string
	AppliedRules []string
	Status       Status
	Message      string
	Err          error
}

// Report aggregates the results of a migration batch
type Report struct {
	Results []FileResult
}

func (r *Report) count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Converted returns the number of successfully converted files
func (r *Report) Converted() int {
	return r.count(StatusConverted)
}

// Skipped returns the number of files rejected by validation
func (r *Report) Skipped() int {
	return r.count(StatusSkipped)
}

// Failed returns the number of files that hit read or write errors
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}
