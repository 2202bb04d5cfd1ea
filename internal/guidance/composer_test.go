// ABOUTME: Tests for guidance composition: thresholds, templates, confidence.
// ABOUTME: Drives Compose with synthetic scoring results to pin boundary behavior.

package guidance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
	"github.com/Trikisalem/multi-agents-dentaire/internal/intent"
)

func newTestComposer() *Composer {
	return NewComposer(catalog.Builtin())
}

func TestComposeConfident(t *testing.T) {
	c := newTestComposer()

	res := c.Compose(intent.Result{BestAgent: "julia", BestScore: 13})

	assert.Equal(t, "julia", res.SuggestedAgent)
	assert.InDelta(t, 13.0/15.0, res.Confidence, 1e-9)
	assert.Contains(t, res.Response, "Julia")
	assert.Contains(t, res.Response, "communication et sms")
	assert.Contains(t, res.Response, "• Envoi SMS personnalisés")
	assert.Contains(t, res.NextActions, "Consulter Julia")
}

func TestComposeThresholds(t *testing.T) {
	c := newTestComposer()

	tests := []struct {
		name      string
		score     int
		wantAgent string
		wantConf  float64
	}{
		{name: "exactly confident", score: 8, wantAgent: "julia", wantConf: 8.0 / 15.0},
		{name: "just below confident", score: 7, wantAgent: "", wantConf: 0.5},
		{name: "exactly ambiguous", score: 3, wantAgent: "", wantConf: 0.5},
		{name: "just below ambiguous", score: 2, wantAgent: "", wantConf: 0},
		{name: "zero", score: 0, wantAgent: "", wantConf: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Compose(intent.Result{BestAgent: "julia", BestScore: tt.score})

			assert.Equal(t, tt.wantAgent, res.SuggestedAgent)
			assert.InDelta(t, tt.wantConf, res.Confidence, 1e-9)
			assert.NotEmpty(t, res.Response)
			assert.NotEmpty(t, res.NextActions)
		})
	}
}

func TestComposeConfidenceCapped(t *testing.T) {
	c := newTestComposer()

	res := c.Compose(intent.Result{BestAgent: "tom", BestScore: 40})

	assert.Equal(t, 1.0, res.Confidence)
}

func TestComposeUnknownBestAgent(t *testing.T) {
	c := newTestComposer()

	// Cannot happen with scores from the shared catalog, but must not fail.
	res := c.Compose(intent.Result{BestAgent: "ghost", BestScore: 20})

	assert.Empty(t, res.SuggestedAgent)
	assert.Equal(t, NoMatch().Response, res.Response)
}

func TestComposePronounInResponse(t *testing.T) {
	c := newTestComposer()

	res := c.Compose(intent.Result{BestAgent: "tom", BestScore: 10})
	assert.Contains(t, res.Response, "Il peut vous aider")

	res = c.Compose(intent.Result{BestAgent: "emma", BestScore: 10})
	assert.Contains(t, res.Response, "Elle peut vous aider")
}

func TestNoMatchListsAllDomains(t *testing.T) {
	res := NoMatch()

	for _, domain := range []string{"Communication", "Rédaction", "Finance", "Réception", "Conseils patients"} {
		assert.Contains(t, res.Response, domain)
	}
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.SuggestedAgent)
}

func TestConfidentResultEmptyCapabilities(t *testing.T) {
	c := NewComposer(catalog.New([]*catalog.Profile{
		{ID: "bare", Name: "Bare", Speciality: "Tests", Pronoun: "Il"},
	}))

	res := c.Compose(intent.Result{BestAgent: "bare", BestScore: 10})

	assert.Contains(t, res.Response, "Fonctionnalités spécialisées disponibles")
}

func TestContextualHelp(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		matched bool
	}{
		{name: "comment", message: "Comment ça marche ?", want: "Décrivez simplement", matched: true},
		{name: "aide", message: "j'ai besoin d'aide", want: "5 agents spécialisés", matched: true},
		{name: "qui", message: "qui êtes-vous ?", want: "Nos agents sont", matched: true},
		{name: "quoi", message: "quoi faire ici", want: "spécialités différentes", matched: true},
		{name: "first trigger wins", message: "comment et qui", want: "Décrivez simplement", matched: true},
		{name: "no trigger", message: "envoyer un sms", matched: false},
		{name: "empty", message: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, ok := ContextualHelp(tt.message)
			require.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.True(t, strings.Contains(resp, tt.want), "response %q should contain %q", resp, tt.want)
			} else {
				assert.Empty(t, resp)
			}
		})
	}
}
