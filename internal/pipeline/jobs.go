package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docredact/internal/match"
)

// JobStatus represents the state of a redaction job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusRecognizing JobStatus = "recognizing"
	StatusClassifying JobStatus = "classifying"
	StatusMatching    JobStatus = "matching"
	StatusRendering   JobStatus = "rendering"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
	StatusDuplicate   JobStatus = "duplicate"
)

// PageRecords groups the match records found on one source page.
type PageRecords struct {
	Page    int            `json:"page"`
	Records []match.Record `json:"records"`
}

// Job tracks the state of a single document redaction.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Set before Submit, read-only while the worker owns the job.
	CallbackURL string `json:"-"`
	Force       bool   `json:"-"`

	// Internal: not serialized.
	fileData        []byte
	suppliedPhrases []match.Phrase
	pages           []PageRecords
	rendered        []byte
	errors          []string
}

// Progress tracks processing progress.
type Progress struct {
	Words   int      `json:"words"`
	Phrases int      `json:"phrases"`
	Matches int      `json:"matches"`
	Pages   int      `json:"pages"`
	Errors  []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction and a
// content-hash index for duplicate detection.
type JobStore struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	byHash map[string]string
	ttl    time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs:   make(map[string]*Job),
		byHash: make(map[string]string),
		ttl:    ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// RegisterHash records jobID as the owner of a content hash. If another live
// job already owns the hash its ID is returned with dup=true and the index is
// left pointing at it.
func (s *JobStore) RegisterHash(hash, jobID string) (originalID string, dup bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if orig, ok := s.byHash[hash]; ok && orig != jobID {
		if _, alive := s.jobs[orig]; alive {
			return orig, true
		}
	}
	s.byHash[hash] = jobID
	return "", false
}

// Cleanup removes expired jobs and hash index entries that point at them.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
	for hash, id := range s.byHash {
		if _, alive := s.jobs[id]; !alive {
			delete(s.byHash, hash)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetContentHash records the upload's content hash.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// MarkDuplicate flags the job as a duplicate of an earlier upload.
func (j *Job) MarkDuplicate(originalID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DuplicateOf = originalID
	j.Status = StatusDuplicate
	j.Phase = "dedup"
	j.UpdatedAt = time.Now()
}

// SetRecognized records word and page counts from text recognition.
func (j *Job) SetRecognized(words, pages int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Words = words
	j.Progress.Pages = pages
	j.UpdatedAt = time.Now()
}

// SetPhraseCount records how many phrases survived classification.
func (j *Job) SetPhraseCount(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Phrases = n
	j.UpdatedAt = time.Now()
}

// SetResults stores the per-page match records.
func (j *Job) SetResults(pages []PageRecords, matches int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pages = pages
	j.Progress.Matches = matches
	j.UpdatedAt = time.Now()
}

// Results returns the per-page match records, nil until matching ran.
func (j *Job) Results() []PageRecords {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pages
}

// SetRendered stores the redacted PNG for raster inputs.
func (j *Job) SetRendered(png []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.rendered = png
	j.UpdatedAt = time.Now()
}

// Rendered returns the redacted PNG, nil for non-raster jobs.
func (j *Job) Rendered() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rendered
}

// SetFileData sets the raw upload bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw upload bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetSuppliedPhrases stores caller-provided phrases that bypass
// classification.
func (j *Job) SetSuppliedPhrases(phrases []match.Phrase) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.suppliedPhrases = phrases
}

// SuppliedPhrases returns caller-provided phrases, nil when none were given.
func (j *Job) SuppliedPhrases() []match.Phrase {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.suppliedPhrases
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Filename    string    `json:"filename"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		DuplicateOf: j.DuplicateOf,
		Progress: Progress{
			Words:   j.Progress.Words,
			Phrases: j.Progress.Phrases,
			Matches: j.Progress.Matches,
			Pages:   j.Progress.Pages,
			Errors:  errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
