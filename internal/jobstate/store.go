package jobstate

import (
	"context"
	"strings"
)

// MaxRecentSearches bounds the recent-search list per user.
const MaxRecentSearches = 10

// TabCounts are the badge counts of the job-board tabs.
type TabCounts struct {
	Saved    int `json:"saved" validate:"gte=0"`
	Archived int `json:"archived" validate:"gte=0"`
	Applied  int `json:"applied" validate:"gte=0"`
}

// Store holds the per-user job-board state. Every operation is scoped to
// one user; nothing is shared between users.
type Store interface {
	SavedJobs(ctx context.Context, userID uint) ([]string, error)
	// InitSavedJobs replaces the whole set.
	InitSavedJobs(ctx context.Context, userID uint, jobIDs []string) error
	SaveJob(ctx context.Context, userID uint, jobID string) error
	UnsaveJob(ctx context.Context, userID uint, jobID string) error
	ResetSavedJobs(ctx context.Context, userID uint) error

	// RecentSearches is most recent first.
	RecentSearches(ctx context.Context, userID uint) ([]string, error)
	PushSearch(ctx context.Context, userID uint, query string) error
	ClearSearches(ctx context.Context, userID uint) error

	TabCounts(ctx context.Context, userID uint) (TabCounts, error)
	SetTabCounts(ctx context.Context, userID uint, c TabCounts) error
	ResetTabCounts(ctx context.Context, userID uint) error
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// pushFront moves q to the head of list, dropping duplicates and anything
// past MaxRecentSearches.
func pushFront(list []string, q string) []string {
	out := make([]string, 0, MaxRecentSearches)
	out = append(out, q)
	for _, s := range list {
		if s == q {
			continue
		}
		if len(out) == MaxRecentSearches {
			break
		}
		out = append(out, s)
	}
	return out
}
