package domain

import "fmt"

// ValidationError is a fatal defect in a zone file. Errors are accumulated;
// one error makes the file's ZoneDefinition unusable but never stops the
// batch. Referential flags errors caused by a dangling reference (a tunnel
// name that does not resolve) rather than a malformed field.
type ValidationError struct {
	Field       string
	Msg         string
	Referential bool
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ValidationWarning is a non-fatal finding: the field is ignored or suspect
// but the zone remains usable. Warnings never fail a run.
type ValidationWarning struct {
	Field string
	Msg   string
}

func (w ValidationWarning) String() string {
	if w.Field == "" {
		return w.Msg
	}
	return fmt.Sprintf("%s: %s", w.Field, w.Msg)
}

// MalformedInputError wraps a document that could not be parsed at all
// (bad YAML, non-mapping top level). Fatal for that file only.
type MalformedInputError struct {
	File string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed zone file %s: %v", e.File, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ValidationResult is the structured outcome of validating one zone file.
// Zone is non-nil only when the file parsed and Errors is empty. Malformed is
// set instead of Errors when the document could not be parsed at all.
type ValidationResult struct {
	File      string
	Zone      *ZoneDefinition
	Malformed *MalformedInputError
	Errors    []ValidationError
	Warnings  []ValidationWarning
}

// OK reports whether the file produced a usable ZoneDefinition.
func (r ValidationResult) OK() bool {
	return r.Malformed == nil && len(r.Errors) == 0
}
