// ABOUTME: Tests for the agent catalog: ordering, lookup, and summaries.
// ABOUTME: Verifies the built-in profiles carry the data clients depend on.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinOrder(t *testing.T) {
	c := Builtin()

	assert.Equal(t, 5, c.Len())
	assert.Equal(t, []string{"julia", "emilie", "tom", "emma", "nora"}, c.IDs())
}

func TestLookup(t *testing.T) {
	c := Builtin()

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "known agent", id: "julia"},
		{name: "last agent", id: "nora"},
		{name: "unknown agent", id: "ghost", wantErr: ErrAgentNotFound},
		{name: "empty id", id: "", wantErr: ErrAgentNotFound},
		{name: "case sensitive", id: "Julia", wantErr: ErrAgentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Lookup(tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, p.ID)
		})
	}
}

func TestBuiltinProfilesComplete(t *testing.T) {
	for _, p := range Builtin().Profiles() {
		assert.NotEmpty(t, p.Name, "agent %s missing name", p.ID)
		assert.NotEmpty(t, p.Speciality, "agent %s missing speciality", p.ID)
		assert.NotEmpty(t, p.WelcomeMessage, "agent %s missing welcome message", p.ID)
		assert.NotEmpty(t, p.Capabilities, "agent %s missing capabilities", p.ID)
		assert.NotEmpty(t, p.Keywords, "agent %s missing keywords", p.ID)
		assert.NotEmpty(t, p.Pronoun, "agent %s missing pronoun", p.ID)
	}
}

func TestSummariesMatchOrder(t *testing.T) {
	c := Builtin()
	summaries := c.Summaries()

	require.Len(t, summaries, c.Len())
	for i, id := range c.IDs() {
		assert.Equal(t, id, summaries[i].ID)
		p, err := c.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, p.Name, summaries[i].Name)
		assert.Equal(t, p.Speciality, summaries[i].Speciality)
	}
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	c := New([]*Profile{
		{ID: "a", Name: "First"},
		{ID: "a", Name: "Second"},
		{ID: "b", Name: "Other"},
	})

	assert.Equal(t, 2, c.Len())
	p, err := c.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "First", p.Name, "first registration wins")
}

func TestExamples(t *testing.T) {
	c := Builtin()
	ex := c.Examples()

	assert.Len(t, ex.Examples, 5)
	require.Len(t, ex.Categories, c.Len())
	for i, id := range c.IDs() {
		assert.Equal(t, id, ex.Categories[i].ID)
		assert.NotEmpty(t, ex.Categories[i].Description)
		assert.NotEmpty(t, ex.Categories[i].Example)
	}
}
