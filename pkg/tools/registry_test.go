package tools

import (
	"testing"

	"writer-coach-be/pkg/corpus"
)

func TestRegistryDescriptors(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		id           string
		minInput     int
		category     string
		discussable  bool
		formatChoice bool
		diversity    bool
		hasHandler   bool
	}{
		{id: Feedback, minInput: 20, discussable: true, hasHandler: true},
		{id: Style, minInput: 20, category: corpus.CategoryStyle, discussable: true, hasHandler: true},
		{id: Roast, minInput: 50, discussable: true, hasHandler: true},
		{id: Praise, minInput: 50, discussable: true, hasHandler: true},
		{id: Corrector, minInput: 3, category: corpus.CategoryStyle, discussable: true, hasHandler: true},
		{id: Editor, minInput: 5, category: corpus.CategoryEditorial, discussable: true, hasHandler: true},
		{id: Methodique, minInput: 5, category: corpus.CategoryCraft, discussable: true, diversity: true, hasHandler: true},
		{id: Summary, minInput: 10, discussable: true, formatChoice: true, hasHandler: true},
		{id: Block, minInput: 1, category: corpus.CategoryCraft, hasHandler: true},
		{id: Develop, minInput: 1, category: corpus.CategoryCraft, hasHandler: true},
		{id: Character, minInput: 1, category: corpus.CategoryCraft, hasHandler: true},
		{id: Dialogue, minInput: 1, category: corpus.CategoryCraft, hasHandler: true},
		{id: Count, minInput: 1},
		{id: DevFeedback, minInput: 1},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d, ok := registry.Get(tt.id)
			if !ok {
				t.Fatalf("tool %s not registered", tt.id)
			}
			if d.MinInput != tt.minInput {
				t.Errorf("MinInput: got %d, want %d", d.MinInput, tt.minInput)
			}
			if d.Category != tt.category {
				t.Errorf("Category: got %q, want %q", d.Category, tt.category)
			}
			if d.Discussable != tt.discussable {
				t.Errorf("Discussable: got %v, want %v", d.Discussable, tt.discussable)
			}
			if d.FormatChoice != tt.formatChoice {
				t.Errorf("FormatChoice: got %v, want %v", d.FormatChoice, tt.formatChoice)
			}
			if d.Diversity != tt.diversity {
				t.Errorf("Diversity: got %v, want %v", d.Diversity, tt.diversity)
			}
			if d.HasHandler() != tt.hasHandler {
				t.Errorf("HasHandler: got %v, want %v", d.HasHandler(), tt.hasHandler)
			}
		})
	}

	if got := len(registry.All()); got != len(tests) {
		t.Errorf("All: got %d descriptors, want %d", got, len(tests))
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	registry := NewRegistry()
	if _, ok := registry.Get("frobnicate"); ok {
		t.Error("unknown tool id should not resolve")
	}
}
