package service

import (
	"fmt"
	"sync"
	"time"
)

// RunSummary tracks what one pipeline execution produced
type RunSummary struct {
	mu           sync.RWMutex
	StartTime    time.Time
	Duration     time.Duration
	Players      int
	CachedRuns   int
	FilesWritten []string
	Persisted    int
	Errors       int
}

// NewRunSummary creates a new summary
func NewRunSummary() *RunSummary {
	return &RunSummary{StartTime: time.Now()}
}

// RecordPlayer counts a finished player run
func (s *RunSummary) RecordPlayer(cached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Players++
	if cached {
		s.CachedRuns++
	}
}

// RecordFile remembers a written output path
func (s *RunSummary) RecordFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FilesWritten = append(s.FilesWritten, path)
}

// RecordPersisted adds stored database rows
func (s *RunSummary) RecordPersisted(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Persisted += n
}

// RecordError increments the error count
func (s *RunSummary) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors++
}

// Finish stamps the duration
func (s *RunSummary) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Duration = time.Since(s.StartTime)
}

// String returns a one-line summary
func (s *RunSummary) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("players=%d cached=%d files=%d persisted=%d errors=%d duration=%v",
		s.Players, s.CachedRuns, len(s.FilesWritten), s.Persisted, s.Errors, s.Duration)
}
