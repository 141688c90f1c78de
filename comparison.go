package parsecompare

import "context"

// EngineOutcome is the result of running one engine. Exactly one of Data and
// Error is set; use Succeeded and Failed to build one.
type EngineOutcome struct {
	Success bool           `json:"success"`
	Data    *ArticleRecord `json:"data"`
	Error   *string        `json:"error"`
}

// Succeeded returns a successful outcome carrying record.
func Succeeded(record *ArticleRecord) EngineOutcome {
	return EngineOutcome{Success: true, Data: record}
}

// Failed returns a failed outcome carrying message.
func Failed(message string) EngineOutcome {
	return EngineOutcome{Error: &message}
}

// ErrorMessage returns the failure message, or "" for a successful outcome.
func (o EngineOutcome) ErrorMessage() string {
	if o.Error == nil {
		return ""
	}
	return *o.Error
}

// ComparisonResult pairs the outcomes of both engines for one page.
// The JSON keys are fixed identifiers consumed by the web client.
type ComparisonResult struct {
	URLDriven      EngineOutcome `json:"postlight"`
	DocumentDriven EngineOutcome `json:"defuddle"`
}

// ComparisonService runs a page through both engines.
type ComparisonService interface {
	// Compare validates req, fetches the page once and extracts it with both
	// engines. Per-engine failures are reported inside the result; an error is
	// returned only for invalid input (EINVALID) or unexpected defects.
	Compare(ctx context.Context, req *FetchRequest) (*ComparisonResult, error)
}
