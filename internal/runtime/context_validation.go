package runtime

import (
	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/schema"
)

// validate checks c against a contract. Violations fail the context with the
// messages stored under domain.ErrorsKey; the returned error is that Failure.
// A nil contract means nothing was declared.
func (e *Engine) validate(contract *schema.Contract, c *domain.Context) error {
	if contract == nil {
		return nil
	}
	if errs := contract.Validate(c); len(errs) > 0 {
		return c.Fail(map[string]any{domain.ErrorsKey: errs})
	}
	return nil
}
