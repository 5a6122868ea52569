package leaderboard

import "time"

// MaxEntries bounds the persisted history. Appends beyond the cap drop the
// lowest-ranked entries.
const MaxEntries = 10

// Entry is one saved result. Entries are immutable once written; the only
// removal path is a bulk Clear.
type Entry struct {
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	RecordedAt     time.Time `json:"recordedAt"`
}
