package user

type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BatchSummary struct {
	Total      int        `json:"total"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Duplicates int        `json:"duplicates"`
	Errors     []RowError `json:"errors"`
}

// BatchReporter folds row results, in file order, into a BatchSummary.
type BatchReporter struct {
	summary BatchSummary
}

func NewBatchReporter() *BatchReporter {
	return &BatchReporter{summary: BatchSummary{Errors: []RowError{}}}
}

func (r *BatchReporter) Add(result ImportResult) {
	r.summary.Total++
	switch result.Kind {
	case ResultCreated:
		r.summary.Successful++
		return
	case ResultDuplicate:
		r.summary.Duplicates++
	default:
		r.summary.Failed++
	}
	r.summary.Errors = append(r.summary.Errors, result.Problems()...)
}

// Summary returns a copy; further Adds do not affect it.
func (r *BatchReporter) Summary() BatchSummary {
	out := r.summary
	out.Errors = append([]RowError{}, r.summary.Errors...)
	return out
}

func Summarize(results []ImportResult) BatchSummary {
	reporter := NewBatchReporter()
	for _, result := range results {
		reporter.Add(result)
	}
	return reporter.Summary()
}
