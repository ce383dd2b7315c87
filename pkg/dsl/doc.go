/*
Package dsl provides a fluent builder for actor definitions.

Contracts, hooks and the core operation are declared in one chain and checked
together by Build, so a malformed definition fails at startup rather than on the
first invocation.

Example usage:

	var Greet = dsl.New("Greet").
		Input(func(c *schema.Builder) {
			c.Required("name").Filled("string")
		}).
		Before(func(ctx *domain.Context) { ctx.Set("greeted_at", time.Now()) }).
		Perform(func(ctx *domain.Context) error {
			name, _ := ctx.GetString("name")
			ctx.Set("greeting", "Hello, "+name)
			return nil
		}).
		MustBuild()

	var Onboard = dsl.Organize("Onboard", CreateAccount, Greet).MustBuild()

Hooks may also name a method of the actor instance. Such hooks are resolved when
the actor runs, against the instance returned by the Instance factory.
*/
package dsl
