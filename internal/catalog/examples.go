// ABOUTME: Static usage-examples payload returned on get_usage_examples.
// ABOUTME: Example sentences plus one category entry per catalog agent.

package catalog

import "fmt"

// Category is one per-agent entry in the usage-examples payload.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// UsageExamples is the payload sent in response to get_usage_examples.
type UsageExamples struct {
	Examples   []string   `json:"examples"`
	Categories []Category `json:"categories"`
}

var exampleMessages = []string{
	"Je veux envoyer un SMS à mes patients",
	"J'ai besoin de rédiger un courrier médical",
	"Analyser la trésorerie de mon cabinet",
	"Gérer les appels de la réception",
	"Créer des conseils pour mes patients",
}

// Examples builds the usage-examples payload from the catalog contents.
func (c *Catalog) Examples() UsageExamples {
	categories := make([]Category, 0, c.Len())
	for _, p := range c.Profiles() {
		categories = append(categories, Category{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Speciality,
			Example:     fmt.Sprintf("Que peut faire %s ?", p.Name),
		})
	}
	return UsageExamples{
		Examples:   exampleMessages,
		Categories: categories,
	}
}
