// ABOUTME: Contextual-help lookup for meta questions about the guide itself.
// ABOUTME: Substring match against a short fixed trigger table; checked before scoring.

package guidance

import "strings"

// helpTopic pairs a trigger word with its canned answer. Kept as an ordered
// slice so the first matching trigger wins deterministically.
type helpTopic struct {
	trigger  string
	response string
}

var helpTopics = []helpTopic{
	{"comment", "Décrivez simplement ce que vous voulez faire, par exemple \"envoyer un SMS\" ou \"rédiger un courrier\""},
	{"aide", "Je peux vous guider vers 5 agents spécialisés. Dites-moi votre besoin et je vous orienterai !"},
	{"qui", "Nos agents sont : Julia (Communication), Émilie (Rédaction), Tom (Finance), Emma (Réception), Nora (Conseils patients)"},
	{"quoi", "Chaque agent a des spécialités différentes. Quel type de tâche souhaitez-vous accomplir ?"},
}

// ContextualHelp returns the canned answer for meta questions ("comment",
// "aide", "qui", "quoi") and whether one matched. Messages that match skip
// intent scoring entirely.
func ContextualHelp(message string) (string, bool) {
	if message == "" {
		return "", false
	}
	lower := strings.ToLower(message)
	for _, topic := range helpTopics {
		if strings.Contains(lower, topic.trigger) {
			return topic.response, true
		}
	}
	return "", false
}
