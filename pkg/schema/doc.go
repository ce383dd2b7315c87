// Package schema provides the contract system used to validate actor contexts.
//
// A Contract is an ordered set of rules, one per attribute. Each rule checks, in
// this order: presence, emptiness, nil allowance, type, and then any number of
// custom validators. Messages are plain strings meant for end users:
//
//	input := schema.MustDefine(func(b *schema.Builder) {
//	    b.Required("name").Filled("string")
//	    b.Required("age").Filled("integer").InRange(0, 150)
//	    b.Optional("email").Maybe("string").Format(`^[^@]+@[^@]+$`)
//	})
//
//	msgs := input.Validate(schema.Map{"name": "Alice"})
//	// ["age is required but missing"]
//
// Types are either primitive kinds ("string", "integer", "float", "numeric", "map",
// "sequence", "boolean", "symbol", "time", "date") or nominal Go types:
//
//	b.Required("clock").Type(schema.Nominal[Clock]())
//
// Malformed declarations (duplicate attributes, unknown kinds, non-pattern formats,
// empty enumerations or ranges) are reported by Build, never at validation time.
//
// Contracts compose with Merge: a child contract overrides its parent's rules by
// attribute name. Contract files (YAML or JSON) express the same through "parent".
package schema
