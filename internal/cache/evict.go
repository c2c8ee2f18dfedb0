package cache

import (
	"log/slog"
	"os"
)

// evict deletes the oldest sessions when the cache holds more than limit
// entries, until at most limit/2 remain. current is never removed.
func evict(root, current string, limit int) {
	sessions, err := Info(root)
	if err != nil {
		slog.Debug("cache eviction skipped", slog.Any("err", err))
		return
	}
	total := 0
	for _, s := range sessions {
		total += s.Entries
	}
	if total <= limit {
		return
	}
	target := limit / 2
	// Info отдаёт новые первыми, удаляем с конца
	for i := len(sessions) - 1; i >= 0 && total > target; i-- {
		s := sessions[i]
		if s.Hash == current {
			continue
		}
		if err := os.RemoveAll(s.Dir); err != nil {
			slog.Debug("cache eviction failed", slog.String("session", s.Dir), slog.Any("err", err))
			continue
		}
		slog.Debug("cache session evicted", slog.String("session", s.Hash), slog.Int("entries", s.Entries))
		total -= s.Entries
	}
}
