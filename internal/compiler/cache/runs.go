package cache

import (
	"sync"
	"time"
)

// Run records the outcome of a generation run
type Run struct {
	ID          string
	Fingerprint string
	OutputDir   string
	Files       []string
	GeneratedAt time.Time
}

// RunCache remembers the last successful run per output directory
type RunCache struct {
	entries map[string]*Run
	mu      sync.RWMutex
}

// NewRunCache creates an empty cache
func NewRunCache() *RunCache {
	return &RunCache{
		entries: make(map[string]*Run),
	}
}

// Get returns the last run that wrote to outputDir
func (rc *RunCache) Get(outputDir string) (*Run, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	run, exists := rc.entries[outputDir]
	return run, exists
}

// UpToDate reports whether the last run into outputDir used the same inputs
func (rc *RunCache) UpToDate(outputDir, fingerprint string) bool {
	run, ok := rc.Get(outputDir)
	return ok && run.Fingerprint == fingerprint
}

// Set stores a run, replacing the previous one for the same output directory
func (rc *RunCache) Set(run *Run) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if run.GeneratedAt.IsZero() {
		run.GeneratedAt = time.Now()
	}
	rc.entries[run.OutputDir] = run
}

// Invalidate forgets the run of outputDir
func (rc *RunCache) Invalidate(outputDir string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	delete(rc.entries, outputDir)
}

// InvalidateAll clears the entire cache
func (rc *RunCache) InvalidateAll() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.entries = make(map[string]*Run)
}

// Size returns the number of cached runs
func (rc *RunCache) Size() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	return len(rc.entries)
}

// Prune removes runs older than maxAge
func (rc *RunCache) Prune(maxAge time.Duration) int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := time.Now()
	pruned := 0
	for dir, run := range rc.entries {
		if now.Sub(run.GeneratedAt) > maxAge {
			delete(rc.entries, dir)
			pruned++
		}
	}
	return pruned
}
