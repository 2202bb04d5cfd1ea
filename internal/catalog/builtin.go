// ABOUTME: Built-in profiles for the five Dentalteam specialist assistants.
// ABOUTME: Catalog order here is the tie-break order used by intent scoring.

package catalog

// Builtin returns the catalog of the five Dentalteam assistants.
// The registration order (julia, emilie, tom, emma, nora) is load-bearing:
// intent scoring resolves ties to the first agent in this order.
func Builtin() *Catalog {
	return New([]*Profile{
		{
			ID:             "julia",
			Name:           "Julia",
			Speciality:     "Communication et SMS",
			Icon:           "📞",
			Color:          "blue",
			Pronoun:        "Elle",
			WelcomeMessage: "Bonjour ! Je suis Julia, votre assistante pour la communication. Comment puis-je vous aider avec vos SMS ou e-mails ?",
			Capabilities:   []string{"Envoi SMS personnalisés", "Gestion des e-mails", "Délégation de tâches"},
			Keywords:       []string{"sms", "message", "communication", "email", "mail", "envoyer", "correspondance", "contact"},
		},
		{
			ID:             "emilie",
			Name:           "Émilie",
			Speciality:     "Rédaction médicale",
			Icon:           "📝",
			Color:          "rose",
			Pronoun:        "Elle",
			WelcomeMessage: "Salut ! Émilie à votre service pour la rédaction. Souhaitez-vous créer un courrier médical ou personnaliser vos modèles ?",
			Capabilities:   []string{"Courriers médicaux", "Modèles personnalisés", "Carnet d'adresses"},
			Keywords:       []string{"courrier", "lettre", "rédaction", "écrire", "modèle", "document", "carnet", "adresse"},
		},
		{
			ID:             "tom",
			Name:           "Tom",
			Speciality:     "Gestion financière",
			Icon:           "💰",
			Color:          "green",
			Pronoun:        "Il",
			WelcomeMessage: "Hello ! Tom ici pour vos analyses financières. Voulez-vous consulter la trésorerie ou générer des rapports ?",
			Capabilities:   []string{"Analyse de trésorerie", "Synthèses financières", "Rapports automatisés"},
			Keywords:       []string{"argent", "finance", "trésorerie", "rapport", "budget", "comptabilité", "analyse", "synthèse"},
		},
		{
			ID:             "emma",
			Name:           "Emma",
			Speciality:     "Réception virtuelle",
			Icon:           "🎧",
			Color:          "orange",
			Pronoun:        "Elle",
			WelcomeMessage: "Bonjour ! Emma pour la réception. Je peux gérer vos appels et identifier vos patients. Que puis-je faire ?",
			Capabilities:   []string{"Appels téléphoniques", "Identification patients", "Transmission d'informations"},
			Keywords:       []string{"appel", "téléphone", "réception", "accueil", "identifier", "patient", "transmission"},
		},
		{
			ID:             "nora",
			Name:           "Nora",
			Speciality:     "Conseils patients",
			Icon:           "📱",
			Color:          "purple",
			Pronoun:        "Elle",
			WelcomeMessage: "Salut ! Nora pour les conseils patients. Voulez-vous créer des conseils personnalisés ou programmer des rappels ?",
			Capabilities:   []string{"Conseils personnalisés", "Application patient", "Rappels de rendez-vous"},
			Keywords:       []string{"conseil", "patient", "rdv", "rendez-vous", "rappel", "suivi", "personnalisé", "app"},
		},
	})
}
