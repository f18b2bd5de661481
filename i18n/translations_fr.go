package i18n

var frenchTranslations = map[string]string{
	// Slide defaults
	"agenda.title": "Sommaire",

	// Handout
	"handout.title":     "%s : support",
	"handout.generated": "Généré le %s",
	"handout.slide":     "Diapositive %d",
	"handout.notes":     "Notes de l'orateur",
	"handout.no_notes":  "Aucune note.",
	"handout.no_text":   "(aucun texte)",
	"handout.chart":     "Graphique : %s",

	// Workbook
	"workbook.overview": "Diapositives",
	"workbook.written":  "Classeur écrit dans %s",
	"workbook.values":   "Valeurs",

	// Build
	"build.start":        "Génération de %s",
	"build.done":         "%s écrit (%d diapositives, %d octets) en %s",
	"build.handout":      "Support écrit dans %s",
	"build.preview":      "%d aperçus écrits dans %s",
	"build.invalid_plan": "Le plan %s est invalide",
	"build.recorded":     "Génération enregistrée sous %s",

	// Inspect and history tables
	"col.slide":    "Diapositive",
	"col.texts":    "Textes",
	"col.notes":    "Notes",
	"col.charts":   "Graphiques",
	"col.layout":   "Mise en page",
	"col.required": "Clés requises",
	"col.id":       "ID",
	"col.created":  "Créé le",
	"col.plan":     "Plan",
	"col.output":   "Fichier",
	"col.slides":   "Diapositives",
	"col.size":     "Taille",
	"col.duration": "Durée",
	"col.layouts":  "Mises en page",

	"inspect.summary":     "%s : %d diapositives, %d avec notes",
	"history.empty":       "Aucune génération enregistrée",
	"history.deleted":     "Génération %s supprimée",
	"history.off":         "L'historique est désactivé ; activez history.enabled dans la configuration",
	"history.degraded":    "Génération non enregistrée : historique indisponible (%v)",
	"history.failed":      "Génération non enregistrée : %v",
	"history.unavailable": "L'historique est indisponible : %v",

	// Install
	"install.done":   "Skill installé dans %s",
	"install.exists": "Skill déjà installé dans %s (utilisez --force pour écraser)",
}
