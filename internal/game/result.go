package game

import (
	"fmt"
	"time"

	"github.com/vytor/emojiabc/internal/catalog"
	"github.com/vytor/emojiabc/internal/models"
)

// BuildResult pairs letter with a random catalog entry.
func BuildResult(c *catalog.Catalog, src catalog.Source, letter string, now time.Time) models.LetterResult {
	entry := c.Lookup(src, letter)
	return models.LetterResult{
		Letter:      letter,
		Emoji:       entry.Emoji,
		EmojiName:   entry.Name,
		DisplayText: fmt.Sprintf("%s is for %s", letter, entry.Name),
		Timestamp:   now.Unix(),
	}
}
