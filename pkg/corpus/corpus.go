package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Corpus categories. Each category is backed by one JSON file in the data
// directory and one vector collection in the index.
const (
	CategoryCraft     = "craft"
	CategoryStyle     = "style"
	CategoryEditorial = "editorial"
)

// Categories lists all known categories in stable order.
var Categories = []string{CategoryCraft, CategoryStyle, CategoryEditorial}

// Chunk is one retrievable excerpt from the reference library.
type Chunk struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	BookTitle string `json:"book_title"`
	Chapter   string `json:"chapter"`
}

// Store keeps the full chunk corpus in memory, grouped by category.
type Store struct {
	byCategory map[string][]Chunk
}

// Load reads <category>.json for every known category from dataDir.
// A missing or unreadable file yields an empty collection for that
// category; Load only fails on malformed JSON.
func Load(dataDir string) (*Store, error) {
	s := &Store{byCategory: make(map[string][]Chunk)}

	for _, category := range Categories {
		path := filepath.Join(dataDir, category+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			s.byCategory[category] = nil
			continue
		}

		var chunks []Chunk
		if err := json.Unmarshal(raw, &chunks); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for i := range chunks {
			if chunks[i].Category == "" {
				chunks[i].Category = category
			}
		}
		s.byCategory[category] = chunks
	}

	return s, nil
}

// NewStore builds a store from pre-loaded chunks, used by tests and the
// indexer CLI.
func NewStore(chunks []Chunk) *Store {
	s := &Store{byCategory: make(map[string][]Chunk)}
	for _, c := range chunks {
		s.byCategory[c.Category] = append(s.byCategory[c.Category], c)
	}
	return s
}

// ByCategory returns the chunks of one category, empty slice when unknown.
func (s *Store) ByCategory(category string) []Chunk {
	return s.byCategory[category]
}

// All returns every chunk across categories in stable category order.
func (s *Store) All() []Chunk {
	var all []Chunk
	for _, category := range Categories {
		all = append(all, s.byCategory[category]...)
	}
	return all
}

// Len reports the total number of chunks.
func (s *Store) Len() int {
	n := 0
	for _, chunks := range s.byCategory {
		n += len(chunks)
	}
	return n
}
