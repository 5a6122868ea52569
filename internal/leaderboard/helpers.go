package leaderboard

import (
	"time"

	ws "quizkit/pkg/http/ws"
)

// WireEntries converts stored entries to the client wire shape, ranks
// assigned from list position.
func WireEntries(entries []Entry) []ws.LeaderboardEntry {
	result := make([]ws.LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = ws.LeaderboardEntry{
			Rank:           i + 1,
			PlayerName:     e.PlayerName,
			Score:          e.Score,
			TotalQuestions: e.TotalQuestions,
			RecordedAt:     e.RecordedAt.Format(time.RFC3339),
		}
	}
	return result
}
