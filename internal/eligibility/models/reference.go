package models

import "strings"

// Reference points at a statutory unit, e.g. AufenthG § 11 "Entry Ban".
// It doubles as a citation on results and as the identity of a rule.
// Two references are the same when all three parts are equal.
type Reference struct {
	LawID     string `json:"law_id" yaml:"law"`
	Provision string `json:"provision" yaml:"provision"`
	Unit      string `json:"unit" yaml:"unit"`
}

// Ref is shorthand for building references in rule tables.
func Ref(lawID, provision, unit string) Reference {
	return Reference{LawID: lawID, Provision: provision, Unit: unit}
}

// String renders the reference for humans: "AufenthG § 11 Entry Ban".
func (r Reference) String() string {
	return strings.TrimSpace(strings.Join([]string{r.LawID, r.Provision, r.Unit}, " "))
}

// ID is the stable identifier used in URLs, selections and CLI flags:
// the three parts joined by ":" with all whitespace removed,
// e.g. "AufenthG:§11:EntryBan".
func (r Reference) ID() string {
	return compact(r.LawID) + ":" + compact(r.Provision) + ":" + compact(r.Unit)
}

func (r Reference) IsZero() bool {
	return r == Reference{}
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// DedupeReferences keeps the first occurrence of each structurally equal
// reference, preserving order.
func DedupeReferences(refs []Reference) []Reference {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[Reference]struct{}, len(refs))
	out := make([]Reference, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
