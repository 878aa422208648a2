package constant

// Commands understood by the dialog service, without the transport's
// slash prefix.
const (
	CmdStart  = "start"
	CmdHelp   = "help"
	CmdDone   = "done"
	CmdReset  = "reset"
	CmdLang   = "lang"
	CmdStats  = "stats"
	CmdPrompt = "prompt"
	CmdIdea   = "idea"
	CmdCite   = "cite"
)

// Summary format choices. Keys are canonical ids; the label tables map
// user-visible button text (either language) back to them.
const (
	FormatSentence      = "sentence"
	FormatParagraph     = "paragraph"
	FormatTwoParagraphs = "two_paragraphs"
	FormatDetailed      = "detailed"
)

// FormatLabels lists the user-visible options per language, in display order.
var FormatLabels = map[string][]string{
	"en": {"One sentence", "One paragraph", "Two paragraphs", "Detailed"},
	"ru": {"Одним предложением", "Одним абзацем", "Два абзаца", "Подробно"},
}

// formatByLabel maps any known label to its canonical format id.
var formatByLabel = map[string]string{
	"one sentence":        FormatSentence,
	"one paragraph":       FormatParagraph,
	"two paragraphs":      FormatTwoParagraphs,
	"detailed":            FormatDetailed,
	"одним предложением":  FormatSentence,
	"одним абзацем":       FormatParagraph,
	"два абзаца":          FormatTwoParagraphs,
	"подробно":            FormatDetailed,
}

// FormatForLabel resolves a user reply to a format id, ok=false when the
// reply is not one of the offered options.
func FormatForLabel(label string) (string, bool) {
	f, ok := formatByLabel[normalizeLabel(label)]
	return f, ok
}

// FormatInstruction returns the summary length directive for a format id.
func FormatInstruction(format string) string {
	switch format {
	case FormatSentence:
		return "Summarize the text in exactly one sentence."
	case FormatParagraph:
		return "Summarize the text in one paragraph."
	case FormatTwoParagraphs:
		return "Summarize the text in two paragraphs."
	default:
		return "Summarize the text in detail, covering every significant part."
	}
}
