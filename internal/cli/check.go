package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/aretw0/actor/pkg/observability"
	"gopkg.in/yaml.v3"
)

// ReadInput decodes a YAML or JSON mapping. An empty document yields an empty input.
func ReadInput(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	input := map[string]any{}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid input document: %w", err)
	}
	return input, nil
}

// Check validates input against the named contract of the catalog.
// The returned context carries the violations under domain.ErrorsKey.
func Check(c *Catalog, name string, input map[string]any, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*domain.Context, error) {
	a, err := c.Actor(name)
	if err != nil {
		return nil, err
	}
	return createEngine(logger, hooks...).Call(a, input)
}

// WriteTrace prints the recorded lifecycle of one invocation, one line per actor.
func WriteTrace(w io.Writer, j *observability.Journal, invocationID string) error {
	for _, e := range j.Invocation(invocationID) {
		if _, err := fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n",
			strings.Repeat("  ", e.Depth), e.Actor, e.Outcome, e.Phase, e.Duration); err != nil {
			return err
		}
	}
	return nil
}
