package registry

import (
	"testing"

	"github.com/aretw0/actor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	greet := &domain.Actor{Name: "Greet"}
	r := NewRegistry(greet, &domain.Actor{Name: "Audit"})

	got, err := r.Lookup("Greet")
	require.NoError(t, err)
	assert.Same(t, greet, got)

	_, err = r.Lookup("Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	replacement := &domain.Actor{Name: "Greet"}
	r.Register("Greet", replacement)
	got, err = r.Lookup("Greet")
	require.NoError(t, err)
	assert.Same(t, replacement, got)

	r.Register("welcome", greet)
	assert.Equal(t, []string{"Audit", "Greet", "welcome"}, r.Names())
}
