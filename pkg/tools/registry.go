package tools

import "writer-coach-be/pkg/corpus"

// Tool ids. The id doubles as the slash command name on the transport side.
const (
	Feedback    = "feedback"
	Style       = "style"
	Roast       = "roast"
	Praise      = "praise"
	Corrector   = "corrector"
	Editor      = "editor"
	Methodique  = "methodique"
	Summary     = "summary"
	Block       = "block"
	Develop     = "develop"
	Character   = "character"
	Dialogue    = "dialogue"
	Count       = "count"
	DevFeedback = "devfeedback"
)

// Descriptor describes one accumulating tool: how much input it needs,
// which corpus category grounds it, and what happens after finalize.
type Descriptor struct {
	ID       string
	MinInput int // minimum rune length of the accumulated buffer

	// Category narrows retrieval for this tool. Empty means search every
	// collection and merge by relevance.
	Category string

	// Discussable tools keep their input after finalize and move the
	// session into discussion mode.
	Discussable bool

	// FormatChoice tools ask for an output format before running.
	FormatChoice bool

	// Diversity tools ground their answer in one chunk per reference
	// author instead of a plain top-k search.
	Diversity bool

	// Instruction is the system-level task description injected into the
	// prompt. Tools with no instruction are handled by the dialog service
	// itself (stats, dev feedback).
	Instruction string
}

// HasHandler reports whether finalize runs a generation for this tool.
func (d Descriptor) HasHandler() bool {
	return d.Instruction != ""
}

var descriptors = []Descriptor{
	{ID: Feedback, MinInput: 20, Discussable: true,
		Instruction: "Give detailed, constructive feedback on the submitted text: strengths first, then concrete weaknesses with examples, then actionable suggestions."},
	{ID: Style, MinInput: 20, Category: corpus.CategoryStyle, Discussable: true,
		Instruction: "Analyze the writing style of the submitted text: voice, rhythm, diction, sentence structure. Point to specific passages."},
	{ID: Roast, MinInput: 50, Discussable: true,
		Instruction: "Critique the submitted text harshly but fairly, in the voice of a merciless editor. Be specific and witty, never cruel about the author."},
	{ID: Praise, MinInput: 50, Discussable: true,
		Instruction: "Highlight everything that genuinely works in the submitted text. Be specific; quote the strongest lines and explain why they land."},
	{ID: Corrector, MinInput: 3, Category: corpus.CategoryStyle, Discussable: true,
		Instruction: "Correct grammar, spelling and punctuation in the submitted text. Return the corrected text, then list the fixes."},
	{ID: Editor, MinInput: 5, Category: corpus.CategoryEditorial, Discussable: true,
		Instruction: "Edit the submitted text for clarity and flow as a line editor would. Return the edited text, then explain the significant changes."},
	{ID: Methodique, MinInput: 5, Category: corpus.CategoryCraft, Discussable: true, Diversity: true,
		Instruction: "Answer the writing-craft question using the reference excerpts. Synthesize across authors and name whose advice you are drawing on."},
	{ID: Summary, MinInput: 10, Discussable: true, FormatChoice: true,
		Instruction: "Summarize the submitted text."},
	{ID: Block, MinInput: 1, Category: corpus.CategoryCraft,
		Instruction: "The writer is blocked. Offer a short, practical way through the block described, plus one concrete exercise."},
	{ID: Develop, MinInput: 1, Category: corpus.CategoryCraft,
		Instruction: "Develop the submitted story idea: suggest directions, conflicts and complications while keeping the writer's intent."},
	{ID: Character, MinInput: 1, Category: corpus.CategoryCraft,
		Instruction: "Help with the described character: motivation, contradictions, arc, and how to show them through action."},
	{ID: Dialogue, MinInput: 1, Category: corpus.CategoryCraft,
		Instruction: "Help with the described dialogue problem: subtext, rhythm, distinct voices. Include a short example exchange."},
	{ID: Count, MinInput: 1},
	{ID: DevFeedback, MinInput: 1},
}

// Registry is the static dispatch table for accumulating tools.
type Registry struct {
	byID map[string]Descriptor
}

func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.byID[d.ID] = d
	}
	return r
}

// Get returns the descriptor for a tool id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every descriptor in declaration order.
func (r *Registry) All() []Descriptor {
	return descriptors
}
