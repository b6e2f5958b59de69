package models

import "legalcheck/pkg/platform/strings"

// Result is the verdict of one rule against one snapshot. Reasons keep the
// order in which they were produced; both slices are free of duplicates.
type Result struct {
	Satisfied bool
	Reasons   []string
	Citations []Reference
}

// NewResult builds a result and normalizes its slices.
func NewResult(satisfied bool, reasons []string, citations []Reference) Result {
	return Result{
		Satisfied: satisfied,
		Reasons:   strings.Dedupe(append([]string(nil), reasons...)),
		Citations: DedupeReferences(citations),
	}
}

// Pass is a satisfied result with one reason and one citation.
func Pass(reason string, cite Reference) Result {
	return NewResult(true, []string{reason}, []Reference{cite})
}

// Fail is an unsatisfied result with one reason and one citation.
func Fail(reason string, cite Reference) Result {
	return NewResult(false, []string{reason}, []Reference{cite})
}

// Cites reports whether ref appears among the citations.
func (r Result) Cites(ref Reference) bool {
	for _, c := range r.Citations {
		if c == ref {
			return true
		}
	}
	return false
}
