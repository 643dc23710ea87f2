package validate

// Result aggregates every finding from one validation or scrub pass.
// Errors block document generation; warnings never do.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the record may be rendered.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// AddError records a blocking structural finding.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrors records several blocking findings.
func (r *Result) AddErrors(msgs []string) {
	r.Errors = append(r.Errors, msgs...)
}

// AddWarning records an advisory finding.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddWarnings records several advisory findings.
func (r *Result) AddWarnings(msgs []string) {
	r.Warnings = append(r.Warnings, msgs...)
}
