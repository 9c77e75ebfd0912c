package chat

// Turn is one exchange in a conversation. Bot is nil for the newest turn,
// which is the one awaiting an answer.
type Turn struct {
	User string  `json:"user"`
	Bot  *string `json:"bot,omitempty"`
}

// Question returns the user text of the last turn.
func Question(history []Turn) (string, bool) {
	if len(history) == 0 {
		return "", false
	}
	return history[len(history)-1].User, true
}
