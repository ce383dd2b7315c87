package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractsYAML = `
contracts:
  - name: person
    rules:
      - attribute: name
        required: true
        filled: true
        type: string
      - attribute: age
        required: true
        type: integer
        in_range: {min: 0, max: 150}
  - name: employee
    parent: person
    rules:
      - attribute: age
        required: true
        type: integer
        in_range: {min: 18, max: 70}
      - attribute: role
        maybe: true
        type: string
        one_of: [engineer, manager]
`

func TestParse_ParentMerging(t *testing.T) {
	f, err := Parse([]byte(contractsYAML), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"person", "employee"}, f.Names())
	assert.Equal(t, "person", f.Parent("employee"))

	employee, err := f.Contract("employee")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "role"}, employee.Names())

	assert.Empty(t, employee.Validate(Map{"name": "Ana", "age": 30, "role": nil}))
	assert.Equal(t,
		[]string{"age must be in range 18..70", "role must be one of engineer, manager"},
		employee.Validate(Map{"name": "Ana", "age": 12, "role": "intern"}),
	)

	person, err := f.Contract("person")
	require.NoError(t, err)
	assert.Empty(t, person.Validate(Map{"name": "Ana", "age": 12}))
}

func TestParse_JSON(t *testing.T) {
	doc := `{"contracts":[{"name":"greeting","rules":[{"attribute":"result","required":true,"filled":true,"type":"string"}]}]}`
	f, err := Parse([]byte(doc), ".json")
	require.NoError(t, err)

	c, err := f.Contract("greeting")
	require.NoError(t, err)
	assert.Equal(t, []string{"result is required but missing"}, c.Validate(Map{}))
}

func TestParse_FilledAndMaybe(t *testing.T) {
	doc := `
contracts:
  - name: note
    rules:
      - attribute: text
        required: true
        filled: true
        maybe: true
        type: string
`
	f, err := Parse([]byte(doc), ".yaml")
	require.NoError(t, err)
	parsed, err := f.Contract("note")
	require.NoError(t, err)

	r, ok := parsed.Rule("text")
	require.True(t, ok)
	assert.True(t, r.Filled())
	assert.True(t, r.Maybe())

	built := MustDefine(func(b *Builder) {
		b.Required("text").Filled("string").Maybe("string")
	})
	for _, v := range []any{nil, "", "hi", 3} {
		assert.Equal(t, built.Validate(Map{"text": v}), parsed.Validate(Map{"text": v}), "%v", v)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown type",
			doc:  "contracts:\n  - name: a\n    rules:\n      - attribute: x\n        type: widget\n",
			want: ErrInvalidType,
		},
		{
			name: "unknown parent",
			doc:  "contracts:\n  - name: a\n    parent: ghost\n",
			want: ErrContractNotFound,
		},
		{
			name: "duplicate attribute",
			doc:  "contracts:\n  - name: a\n    rules:\n      - attribute: x\n      - attribute: x\n",
			want: ErrDuplicateRule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), ".yaml")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_RejectsUnknownRuleKeys(t *testing.T) {
	doc := "contracts:\n  - name: a\n    rules:\n      - attribute: x\n        requird: true\n"
	_, err := Parse([]byte(doc), ".yaml")
	assert.Error(t, err)
}

func TestParse_ParentCycle(t *testing.T) {
	doc := "contracts:\n  - name: a\n    parent: b\n  - name: b\n    parent: a\n"
	_, err := Parse([]byte(doc), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent cycle")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contractsYAML), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	_, err = f.Contract("missing")
	assert.ErrorIs(t, err, ErrContractNotFound)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
