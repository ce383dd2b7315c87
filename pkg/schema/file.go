package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ruleSpec is the file representation of one rule.
type ruleSpec struct {
	Attribute  string     `mapstructure:"attribute"`
	Required   bool       `mapstructure:"required"`
	Filled     bool       `mapstructure:"filled"`
	Maybe      bool       `mapstructure:"maybe"`
	Type       string     `mapstructure:"type"`
	Format     string     `mapstructure:"format"`
	RespondsTo string     `mapstructure:"responds_to"`
	OneOf      []any      `mapstructure:"one_of"`
	InRange    *rangeSpec `mapstructure:"in_range"`
}

type rangeSpec struct {
	Min any `mapstructure:"min"`
	Max any `mapstructure:"max"`
}

type contractSpec struct {
	Name   string           `yaml:"name" json:"name"`
	Parent string           `yaml:"parent" json:"parent"`
	Rules  []map[string]any `yaml:"rules" json:"rules"`
}

// fileSpec represents the structure of a contracts.yaml document.
type fileSpec struct {
	Contracts []contractSpec `yaml:"contracts" json:"contracts"`
}

type fileEntry struct {
	parent string
	own    *Contract
}

// File is a set of named contracts loaded from a YAML or JSON document.
// Contracts may extend another contract of the same file through "parent".
type File struct {
	order   []string
	entries map[string]fileEntry
}

// LoadFile reads a contract file. The format is chosen by extension (".json" or YAML).
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contracts file: %w", err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse decodes a contract document. ext selects JSON when it is ".json"; anything
// else is parsed as YAML.
func Parse(data []byte, ext string) (*File, error) {
	var spec fileSpec
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse contracts json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse contracts yaml: %w", err)
		}
	}

	f := &File{entries: make(map[string]fileEntry, len(spec.Contracts))}
	var errs []error
	for _, cs := range spec.Contracts {
		if cs.Name == "" {
			errs = append(errs, errors.New("contract without name"))
			continue
		}
		if _, dup := f.entries[cs.Name]; dup {
			errs = append(errs, fmt.Errorf("contract %q declared twice", cs.Name))
			continue
		}
		own, err := buildContract(cs.Rules)
		if err != nil {
			errs = append(errs, fmt.Errorf("contract %q: %w", cs.Name, err))
			continue
		}
		f.order = append(f.order, cs.Name)
		f.entries[cs.Name] = fileEntry{parent: cs.Parent, own: own}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, name := range f.order {
		if _, err := f.Contract(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f, nil
}

func buildContract(raw []map[string]any) (*Contract, error) {
	b := NewBuilder()
	for i, m := range raw {
		var rs ruleSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &rs,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		var rb *RuleBuilder
		if rs.Required {
			rb = b.Required(rs.Attribute)
		} else {
			rb = b.Optional(rs.Attribute)
		}

		var typ []any
		if rs.Type != "" {
			typ = append(typ, rs.Type)
		}
		if rs.Filled {
			rb.Filled(typ...)
		}
		if rs.Maybe {
			rb.Maybe(typ...)
		}
		if !rs.Filled && !rs.Maybe && len(typ) > 0 {
			rb.Type(typ[0])
		}
		if rs.Format != "" {
			rb.Format(rs.Format)
		}
		if rs.RespondsTo != "" {
			rb.RespondsTo(rs.RespondsTo)
		}
		if rs.OneOf != nil {
			rb.OneOf(rs.OneOf...)
		}
		if rs.InRange != nil {
			rb.InRange(rs.InRange.Min, rs.InRange.Max)
		}
	}
	return b.Build()
}

// Names returns the contract names in file order.
func (f *File) Names() []string {
	return append([]string(nil), f.order...)
}

// Parent returns the declared parent of a contract, if any.
func (f *File) Parent(name string) string {
	return f.entries[name].parent
}

// Contract returns the effective contract for name, merging the parent chain.
// The result is recomputed on every call.
func (f *File) Contract(name string) (*Contract, error) {
	return f.resolve(name, map[string]bool{})
}

func (f *File) resolve(name string, visiting map[string]bool) (*Contract, error) {
	entry, ok := f.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, name)
	}
	if visiting[name] {
		return nil, fmt.Errorf("contract %q: parent cycle", name)
	}
	visiting[name] = true

	if entry.parent == "" {
		return entry.own, nil
	}
	parent, err := f.resolve(entry.parent, visiting)
	if err != nil {
		return nil, fmt.Errorf("contract %q: %w", name, err)
	}
	return Merge(parent, entry.own), nil
}
