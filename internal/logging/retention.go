package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PruneLogDir deletes *.log files in logDir last modified more than
// retentionDays ago. The active log file is never removed. A retentionDays
// value of 0 disables pruning.
func PruneLogDir(logger *slog.Logger, logDir string, retentionDays int) {
	logDir = strings.TrimSpace(logDir)
	if logDir == "" || retentionDays <= 0 {
		return
	}
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	pruned := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == LogFileName || filepath.Ext(name) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(logDir, name)
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "log pruning failed", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check permissions on logging.log_dir"),
				String(FieldImpact, "stale log file stays on disk"),
			)
			continue
		}
		pruned++
	}
	if pruned > 0 && logger != nil {
		logger.Debug("old logs pruned",
			Int("count", pruned),
			String("dir", logDir),
			String(FieldEventType, "log_pruned"))
	}
}
