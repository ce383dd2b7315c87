package runtime

import "github.com/aretw0/actor/pkg/domain"

// organize is the core operation of an organizer: every step runs, in order,
// against the same context with the strict variant. The first failure stops the
// chain; the failing step has already rolled back the steps completed before it.
func (e *Engine) organize(a *domain.Actor, c *domain.Context, depth int) error {
	for _, step := range a.Steps {
		if err := e.run(step, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
