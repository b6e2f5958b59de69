// Package config loads the per-law rule sets from YAML and resolves every
// configured reference against the rule catalogue.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"legalcheck/internal/eligibility/engine"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	dErrors "legalcheck/pkg/domain-errors"
)

//go:embed rulesets.yaml
var embedded []byte

// File is the on-disk shape of a rule-set configuration.
type File struct {
	Laws []LawConfig `yaml:"laws"`
}

// LawConfig lists the rules of one law in evaluation order. Blocking
// references are taken as given; the engine reports one that is not among
// the rules when the law is evaluated.
type LawConfig struct {
	laws.Law `yaml:",inline"`
	Rules    []models.Reference `yaml:"rules"`
	Blocking []models.Reference `yaml:"blocking"`
}

// RuleSets is a resolved configuration, ready for engine.NewOrchestrator.
type RuleSets struct {
	Laws []laws.Law
	Sets []engine.RuleSet
}

// Law returns the metadata of a configured law.
func (r *RuleSets) Law(id string) (laws.Law, bool) {
	for _, l := range r.Laws {
		if l.ID == id {
			return l, true
		}
	}
	return laws.Law{}, false
}

// Default resolves the embedded configuration.
func Default(cat *laws.Catalogue) (*RuleSets, error) {
	return Parse(bytes.NewReader(embedded), cat)
}

// Load resolves the file at path, or the embedded configuration when path
// is empty.
func Load(path string, cat *laws.Catalogue) (*RuleSets, error) {
	if strings.TrimSpace(path) == "" {
		return Default(cat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidRuleSet, "open rule set file")
	}
	defer f.Close()
	return Parse(f, cat)
}

// Parse decodes a configuration and resolves it. Unknown fields, unknown
// rule references, repeated laws and repeated rules are rejected.
func Parse(r io.Reader, cat *laws.Catalogue) (*RuleSets, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dErrors.New(dErrors.CodeInvalidRuleSet, "rule set configuration is empty")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidRuleSet, "decode rule set configuration")
	}
	return file.Resolve(cat)
}

// Resolve turns the configuration into engine rule sets.
func (f File) Resolve(cat *laws.Catalogue) (*RuleSets, error) {
	if len(f.Laws) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidRuleSet, "no laws configured")
	}
	out := &RuleSets{}
	seenLaw := make(map[string]struct{}, len(f.Laws))
	for _, lc := range f.Laws {
		lawID := strings.TrimSpace(lc.ID)
		if lawID == "" {
			return nil, dErrors.New(dErrors.CodeInvalidRuleSet, "law without id")
		}
		if _, dup := seenLaw[lawID]; dup {
			return nil, invalid("law %s configured twice", lawID)
		}
		seenLaw[lawID] = struct{}{}

		set, err := lc.resolve(lawID, cat)
		if err != nil {
			return nil, err
		}
		meta := lc.Law
		meta.ID = lawID
		if meta.Title == "" {
			if known, ok := cat.Law(lawID); ok {
				meta = known
			}
		}
		out.Laws = append(out.Laws, meta)
		out.Sets = append(out.Sets, set)
	}
	return out, nil
}

func (lc LawConfig) resolve(lawID string, cat *laws.Catalogue) (engine.RuleSet, error) {
	if len(lc.Rules) == 0 {
		return engine.RuleSet{}, invalid("law %s has no rules", lawID)
	}
	set := engine.RuleSet{
		LawID:    lawID,
		Rules:    make([]rules.Rule, 0, len(lc.Rules)),
		Blocking: append([]models.Reference(nil), lc.Blocking...),
	}
	seen := make(map[models.Reference]struct{}, len(lc.Rules))
	for _, ref := range lc.Rules {
		entry, ok := cat.Lookup(ref)
		if !ok {
			return engine.RuleSet{}, invalid("law %s: unknown rule %q", lawID, ref.String())
		}
		if _, dup := seen[ref]; dup {
			return engine.RuleSet{}, invalid("law %s: rule %q listed twice", lawID, ref.String())
		}
		seen[ref] = struct{}{}
		set.Rules = append(set.Rules, entry.Rule)
	}
	return set, nil
}

func invalid(format string, args ...any) error {
	return dErrors.New(dErrors.CodeInvalidRuleSet, fmt.Sprintf(format, args...))
}
