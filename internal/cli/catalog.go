package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/dsl"
	"github.com/aretw0/actor/pkg/registry"
	"github.com/aretw0/actor/pkg/schema"
)

// Catalog is a contract file turned into runnable checker actors, one per contract.
type Catalog struct {
	Path     string
	File     *schema.File
	Registry *registry.Registry
}

// LoadCatalog reads a contract file. Every contract, with its parent chain
// resolved, becomes an actor named after it whose only work is validating input.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	reg := registry.NewRegistry()
	for _, name := range f.Names() {
		c, err := f.Contract(name)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}
		a, err := dsl.New(name).InputContract(c).Build()
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", name, err)
		}
		reg.Register(name, a)
	}
	return &Catalog{Path: path, File: f, Registry: reg}, nil
}

// Actor returns the checker actor of a contract.
func (c *Catalog) Actor(name string) (*domain.Actor, error) {
	return c.Registry.Lookup(name)
}

// ListContracts writes one line per contract: name, parent and effective rules.
func ListContracts(w io.Writer, c *Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTRACT\tPARENT\tRULES")
	for _, name := range c.File.Names() {
		contract, err := c.File.Contract(name)
		if err != nil {
			return err
		}
		parent := c.File.Parent(name)
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, parent, describeRules(contract))
	}
	return tw.Flush()
}

func describeRules(c *schema.Contract) string {
	rules := c.Rules()
	if len(rules) == 0 {
		return "-"
	}
	parts := make([]string, len(rules))
	for i, r := range rules {
		s := r.Name()
		if !r.Required() {
			s += "?"
		}
		if t, ok := r.Type(); ok {
			s += ":" + t.Name()
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}
