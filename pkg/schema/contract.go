package schema

// Contract is an ordered, immutable set of rules keyed by attribute name.
type Contract struct {
	rules []*Rule
	index map[string]int
}

func newContract(rules []*Rule) *Contract {
	c := &Contract{
		rules: rules,
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		c.index[r.name] = i
	}
	return c
}

// Validate runs every rule in declaration order and concatenates their messages.
// A nil or empty contract always succeeds.
func (c *Contract) Validate(attrs Attributes) []string {
	if c == nil {
		return nil
	}
	var errs []string
	for _, r := range c.rules {
		errs = append(errs, r.Validate(attrs)...)
	}
	return errs
}

// Check is Validate reporting failures as a *ValidationError.
func (c *Contract) Check(attrs Attributes) error {
	if msgs := c.Validate(attrs); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// Len returns the number of rules.
func (c *Contract) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Rules returns the rules in declaration order.
func (c *Contract) Rules() []*Rule {
	if c == nil {
		return nil
	}
	return append([]*Rule(nil), c.rules...)
}

// Rule looks up the rule for an attribute.
func (c *Contract) Rule(name string) (*Rule, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[CanonicalName(name)]
	if !ok {
		return nil, false
	}
	return c.rules[i], true
}

// Names returns the attribute names in declaration order.
func (c *Contract) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}

// Merge combines an inherited contract with a child's own declarations.
// Child rules replace parent rules of the same name in place; new child rules are
// appended. If either side is nil the other is returned unchanged.
func Merge(parent, child *Contract) *Contract {
	switch {
	case parent == nil:
		return child
	case child == nil:
		return parent
	}

	rules := make([]*Rule, 0, len(parent.rules)+len(child.rules))
	for _, r := range parent.rules {
		if override, ok := child.Rule(r.name); ok {
			rules = append(rules, override)
			continue
		}
		rules = append(rules, r)
	}
	for _, r := range child.rules {
		if _, ok := parent.index[r.name]; !ok {
			rules = append(rules, r)
		}
	}
	return newContract(rules)
}
