// Package game picks letters and turns them into displayable rounds.
package game

import (
	"strings"

	"github.com/vytor/emojiabc/internal/catalog"
)

// PickNext returns a letter drawn uniformly from A-Z. When previous is itself
// a letter (case-insensitive) it is excluded so a round never repeats the one
// before it.
func PickNext(src catalog.Source, previous string) string {
	previous = strings.ToUpper(previous)

	candidates := make([]byte, 0, len(catalog.Alphabet))
	for i := 0; i < len(catalog.Alphabet); i++ {
		if c := catalog.Alphabet[i]; string(c) != previous {
			candidates = append(candidates, c)
		}
	}
	return string(candidates[src.IntN(len(candidates))])
}
