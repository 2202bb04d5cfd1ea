// ABOUTME: Guidance composer: thresholds, templates, confidence normalization.
// ABOUTME: Total function of the scoring result; unknown best agents degrade to no-match.

package guidance

import (
	"fmt"
	"strings"

	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
	"github.com/Trikisalem/multi-agents-dentaire/internal/intent"
)

// Classification thresholds. A best score at or above ScoreConfident names a
// single agent; between ScoreAmbiguous and ScoreConfident the reply asks the
// user to narrow down; below ScoreAmbiguous the reply is generic orientation.
const (
	ScoreConfident = 8
	ScoreAmbiguous = 3

	// confidenceScale divides the best score to produce the [0,1]
	// confidence value (capped at 1).
	confidenceScale = 15
)

// Fixed reply templates.
const (
	WelcomeMessage = "👋 Bonjour ! Je suis votre guide intelligent Dentalteam.fr. Décrivez-moi votre besoin et je vous orienterai vers le bon agent spécialisé !"

	noMatchMessage = "Je peux vous guider vers le bon agent ! Dites-moi ce que vous souhaitez faire :\n" +
		"• Communication (SMS, e-mails)\n" +
		"• Rédaction (courriers médicaux)\n" +
		"• Finance (trésorerie, rapports)\n" +
		"• Réception (appels, patients)\n" +
		"• Conseils patients (RDV, suivi)"

	multipleMatchMessage = "J'ai trouvé plusieurs agents qui pourraient vous aider. Pouvez-vous être plus précis sur votre besoin ?"

	// ErrorMessage is shown when processing a message fails unexpectedly.
	ErrorMessage = "Désolé, j'ai rencontré un problème. Pouvez-vous reformuler votre demande ?"
)

// Result is the composed guidance reply for one user message.
type Result struct {
	Response       string
	SuggestedAgent string
	Confidence     float64
	NextActions    []string
}

// Composer builds guidance replies from scoring results.
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer creates a composer over the given catalog.
func NewComposer(c *catalog.Catalog) *Composer {
	return &Composer{catalog: c}
}

// Compose classifies the scoring result and builds the matching reply.
func (c *Composer) Compose(scores intent.Result) Result {
	if scores.BestScore >= ScoreConfident && scores.BestAgent != "" {
		profile, err := c.catalog.Lookup(scores.BestAgent)
		if err == nil {
			return confidentResult(profile, scores.BestScore)
		}
		// A best agent missing from the catalog cannot happen with scores
		// produced by this catalog; degrade to no-match rather than fail.
	}

	if scores.BestScore >= ScoreAmbiguous {
		return Result{
			Response:    multipleMatchMessage,
			Confidence:  0.5,
			NextActions: []string{"Être plus précis", "Voir tous les agents", "Reformuler"},
		}
	}

	return NoMatch()
}

// NoMatch returns the generic orientation reply used when nothing scored.
func NoMatch() Result {
	return Result{
		Response:    noMatchMessage,
		Confidence:  0,
		NextActions: []string{"Voir tous les agents", "Expliquer mon besoin", "Exemples d'usage"},
	}
}

func confidentResult(p *catalog.Profile, bestScore int) Result {
	var caps strings.Builder
	for i, capability := range p.Capabilities {
		if i > 0 {
			caps.WriteString("\n")
		}
		caps.WriteString("• " + capability)
	}
	capabilityList := caps.String()
	if capabilityList == "" {
		capabilityList = "• Fonctionnalités spécialisées disponibles"
	}

	confidence := float64(bestScore) / confidenceScale
	if confidence > 1 {
		confidence = 1
	}

	return Result{
		Response: fmt.Sprintf("Parfait ! %s est exactement ce qu'il vous faut pour %s. %s peut vous aider avec :\n%s",
			p.Name, strings.ToLower(p.Speciality), p.Pronoun, capabilityList),
		SuggestedAgent: p.ID,
		Confidence:     confidence,
		NextActions:    []string{fmt.Sprintf("Consulter %s", p.Name), "Voir d'autres options", "Poser une question"},
	}
}
