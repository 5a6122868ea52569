package question

// Question is one multiple-choice item. Options are identified by index;
// CorrectOption is the single correct index and is never sent to clients
// while the question is still open.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOptionIndex"`
	Category      string   `json:"category"`
}
