package models

type EmojiEntry struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Name  string `json:"name" yaml:"name"`
}

// LetterResult is the payload returned for one freshly picked letter.
type LetterResult struct {
	Letter      string `json:"letter"`
	Emoji       string `json:"emoji"`
	EmojiName   string `json:"emoji_name"`
	DisplayText string `json:"display_text"`
	Timestamp   int64  `json:"timestamp"`
}

type HistoryRecord struct {
	Letter    string   `json:"letter"`
	Emoji     string   `json:"emoji,omitempty"`
	EmojiName string   `json:"emoji_name,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Error     int      `json:"error"`
	TimeTaken *float64 `json:"time_taken"`
}

// SessionState is everything the server remembers about one player.
// History is ordered oldest first.
type SessionState struct {
	CurrentLetter string          `json:"current_letter"`
	History       []HistoryRecord `json:"history"`
}

type Statistics struct {
	TotalAttempts int     `json:"total_attempts"`
	TotalErrors   int     `json:"total_errors"`
	Accuracy      float64 `json:"accuracy"`
}
