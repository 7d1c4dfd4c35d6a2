// Package catalog holds the static letter to emoji table the game draws from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/emojiabc/internal/models"
)

//go:embed emojis.yaml
var defaultCatalog []byte

const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Sentinel is returned for letters the catalog has no entries for.
var Sentinel = models.EmojiEntry{Emoji: "❓", Name: "Question"}

// Source is the random number source used for every uniform choice.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the goroutine-safe top-level math/rand/v2 generator.
var DefaultSource Source = globalSource{}

// Catalog is immutable once loaded and safe to share between goroutines.
type Catalog struct {
	entries map[string][]models.EmojiEntry
}

// Load reads a YAML catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a mapping of single-letter keys to lists of {emoji, name}.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]models.EmojiEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("catalog has no letters")
	}

	entries := make(map[string][]models.EmojiEntry, len(raw))
	for key, list := range raw {
		letter := strings.ToUpper(strings.TrimSpace(key))
		if !IsLetter(letter) {
			return nil, fmt.Errorf("key %q is not a single letter A-Z", key)
		}
		if _, dup := entries[letter]; dup {
			return nil, fmt.Errorf("letter %s is listed more than once", letter)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("letter %s has no entries", letter)
		}
		for i, e := range list {
			if e.Emoji == "" || e.Name == "" {
				return nil, fmt.Errorf("letter %s entry %d needs both emoji and name", letter, i)
			}
		}
		entries[letter] = append([]models.EmojiEntry(nil), list...)
	}
	return &Catalog{entries: entries}, nil
}

// IsLetter reports whether s is exactly one uppercase ASCII letter.
func IsLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// Lookup picks one entry for letter uniformly at random. Matching is
// case-insensitive and unknown letters yield Sentinel.
func (c *Catalog) Lookup(src Source, letter string) models.EmojiEntry {
	list, ok := c.entries[strings.ToUpper(letter)]
	if !ok || len(list) == 0 {
		return Sentinel
	}
	return list[src.IntN(len(list))]
}

// Entries returns a copy of the configured list for letter.
func (c *Catalog) Entries(letter string) []models.EmojiEntry {
	return append([]models.EmojiEntry(nil), c.entries[strings.ToUpper(letter)]...)
}

// Missing lists the letters of the alphabet with no entries, in order.
func (c *Catalog) Missing() []string {
	var missing []string
	for _, r := range Alphabet {
		if _, ok := c.entries[string(r)]; !ok {
			missing = append(missing, string(r))
		}
	}
	return missing
}

// Letters returns the configured letters sorted.
func (c *Catalog) Letters() []string {
	letters := make([]string, 0, len(c.entries))
	for l := range c.entries {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}
