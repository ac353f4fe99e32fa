package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// NewRetentionScheduler prunes stale job directories under rootDir once at
// startup and then every hour.
func NewRetentionScheduler(rootDir string, retention time.Duration) (gocron.Scheduler, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}

	if _, err := Prune(rootDir, retention, time.Now()); err != nil {
		return nil, fmt.Errorf("initial prune failed: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if _, err := Prune(rootDir, retention, time.Now()); err != nil {
				log.Printf("Failed to prune %s: %v", rootDir, err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Pruning job output older than %s from %s", retention, rootDir)
	scheduler.Start()
	return scheduler, nil
}

// Prune removes the job directories directly under rootDir last modified
// before now-retention, returning how many were removed.
func Prune(rootDir string, retention time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(rootDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-retention)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return removed, err
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(rootDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
