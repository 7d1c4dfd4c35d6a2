package models

// TimeTakenUpdate is the body accepted by /update_time_taken and /update_history.
// Every field is optional; absent values decode to their zero value.
type TimeTakenUpdate struct {
	Letter    string   `json:"letter"`
	TimeTaken *float64 `json:"time_taken"`
	Emoji     string   `json:"emoji"`
	EmojiName string   `json:"emoji_name"`
}

type ErrorReport struct {
	Letter string `json:"letter"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
