package jobstate

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/debounce"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
)

// SearchQuietPeriod is how long a user must stop typing before the query
// is recorded.
const SearchQuietPeriod = 750 * time.Millisecond

// SearchRecorder records recent searches through a per-user debounce so
// keystrokes do not each land in the list.
type SearchRecorder struct {
	store Store
	log   *zap.Logger
	deb   *debounce.Debouncer[string]
}

func NewSearchRecorder(store Store, quiet time.Duration, log *zap.Logger) *SearchRecorder {
	r := &SearchRecorder{store: store, log: logger.OrNop(log)}
	r.deb = debounce.New(quiet, r.flush)
	return r
}

func (r *SearchRecorder) Record(userID uint, query string) {
	q := normalizeQuery(query)
	if q == "" {
		return
	}
	r.deb.Trigger(strconv.FormatUint(uint64(userID), 10), q)
}

// Close writes queries still inside their quiet period, then stops
// accepting new ones. It must run before the store's connection closes.
func (r *SearchRecorder) Close() {
	r.deb.Flush()
}

func (r *SearchRecorder) flush(key, query string) {
	userID, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.store.PushSearch(ctx, uint(userID), query); err != nil {
		r.log.Warn("recent search not recorded",
			zap.Uint64("user_id", userID),
			zap.Error(err),
		)
	}
}
