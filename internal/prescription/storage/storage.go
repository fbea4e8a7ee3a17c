package storage

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
)

// JobStore provides in-memory storage for scan jobs. The raw OCR text is
// never stored here — jobs carry only the extraction output — and completed
// jobs are cleaned up after a TTL so drafts do not linger server-side once
// the review UI has collected them.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ScanJob
	ttl  time.Duration
}

// NewJobStore creates a new in-memory job store with the given TTL
func NewJobStore(ttl time.Duration) *JobStore {
	s := &JobStore{
		jobs: make(map[string]*domain.ScanJob),
		ttl:  ttl,
	}
	go s.cleanupLoop()
	return s
}

// GenerateJobID creates a cryptographically random job ID
func GenerateJobID() string {
	b := make([]byte, 16)
	rand.Read(b)
	const hex = "0123456789abcdef"
	id := make([]byte, 32)
	for i, v := range b {
		id[i*2] = hex[v>>4]
		id[i*2+1] = hex[v&0x0f]
	}
	return string(id)
}

// StoreJob stores a scan job
func (s *JobStore) StoreJob(job *domain.ScanJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
}

// GetJob retrieves a scan job by ID, or nil when unknown or expired.
// It returns a snapshot taken under the lock, never the stored object:
// callers serialize the job while the processing goroutine may still be
// mutating it through UpdateJob.
func (s *JobStore) GetJob(jobID string) *domain.ScanJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// UpdateJob applies update to an existing scan job under the store lock
func (s *JobStore) UpdateJob(jobID string, update func(*domain.ScanJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		update(job)
	}
}

// DeleteJob removes a job from storage
func (s *JobStore) DeleteJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// cleanupLoop periodically removes expired jobs
func (s *JobStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *JobStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
