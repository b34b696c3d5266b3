package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocVersion is the current rule document format version.
const DocVersion = 1

// ruleDoc is the on-disk rule set document.
type ruleDoc struct {
	Version  int `yaml:"version" json:"version"`
	Defaults struct {
		Severity Severity `yaml:"severity" json:"severity"`
	} `yaml:"defaults" json:"defaults"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// FromFile loads rules from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported rules file extension: %s", ext)
	}
}

// FromYAML parses a YAML rule set document.
func FromYAML(data []byte) ([]Rule, error) {
	var doc ruleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return docRules(doc)
}

// FromJSON parses a JSON rule set document.
func FromJSON(data []byte) ([]Rule, error) {
	var doc ruleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return docRules(doc)
}

// docRules applies document defaults and validates rule identity.
// Constraint vetting happens later, in NewSet.
func docRules(doc ruleDoc) ([]Rule, error) {
	// Version zero means the document predates versioning; accept it.
	if doc.Version != 0 && doc.Version != DocVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	def := doc.Defaults.Severity
	switch def {
	case "":
		def = SeverityBlock
	case SeverityBlock, SeverityWarn:
	default:
		return nil, fmt.Errorf("defaults: %w: %q", ErrInvalidSeverity, def)
	}

	seen := make(map[string]struct{}, len(doc.Rules))
	out := make([]Rule, len(doc.Rules))
	for i, r := range doc.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyRuleID)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rule %q: %w", r.ID, ErrDuplicateRuleID)
		}
		seen[r.ID] = struct{}{}

		switch r.Severity {
		case "":
			r.Severity = def
		case SeverityBlock, SeverityWarn:
		default:
			return nil, fmt.Errorf("rule %q: %w: %q", r.ID, ErrInvalidSeverity, r.Severity)
		}
		out[i] = r
	}
	return out, nil
}
