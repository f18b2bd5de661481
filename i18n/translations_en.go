package i18n

var englishTranslations = map[string]string{
	// Slide defaults
	"agenda.title": "Agenda",

	// Handout
	"handout.title":     "%s: handout",
	"handout.generated": "Generated on %s",
	"handout.slide":     "Slide %d",
	"handout.notes":     "Speaker notes",
	"handout.no_notes":  "No speaker notes.",
	"handout.no_text":   "(no text)",
	"handout.chart":     "Chart: %s",

	// Workbook
	"workbook.overview": "Slides",
	"workbook.written":  "Workbook written to %s",
	"workbook.values":   "Values",

	// Build
	"build.start":        "Building %s",
	"build.done":         "Wrote %s (%d slides, %d bytes) in %s",
	"build.handout":      "Handout written to %s",
	"build.preview":      "%d preview images written to %s",
	"build.invalid_plan": "Plan %s is invalid",
	"build.recorded":     "Build recorded as %s",

	// Inspect and history tables
	"col.slide":    "Slide",
	"col.texts":    "Texts",
	"col.notes":    "Notes",
	"col.charts":   "Charts",
	"col.layout":   "Layout",
	"col.required": "Required keys",
	"col.id":       "ID",
	"col.created":  "Created",
	"col.plan":     "Plan",
	"col.output":   "Output",
	"col.slides":   "Slides",
	"col.size":     "Size",
	"col.duration": "Duration",
	"col.layouts":  "Layouts",

	"inspect.summary":     "%s: %d slides, %d with notes",
	"history.empty":       "No builds recorded",
	"history.deleted":     "Deleted build %s",
	"history.off":         "Build history is disabled; set history.enabled in the config",
	"history.degraded":    "Build not recorded: history is unavailable (%v)",
	"history.failed":      "Build not recorded: %v",
	"history.unavailable": "Build history is unavailable: %v",

	// Install
	"install.done":   "Skill installed to %s",
	"install.exists": "Skill already installed at %s (use --force to overwrite)",
}
