package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docredact/internal/match"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusRecognizing, "reading document text"},
		{StatusClassifying, "finding sensitive spans"},
		{StatusMatching, "locating spans in words"},
		{StatusRendering, "painting redactions"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusMatching,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "matching error")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("segment 3 failed")
	job.AddError("segment 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "segment 3 failed" {
		t.Errorf("expected first error %q, got %q", "segment 3 failed", snap.Progress.Errors[0])
	}
}

func TestJob_SetRecognized(t *testing.T) {
	job := &Job{ID: "rec-test", UpdatedAt: time.Now()}
	job.SetRecognized(412, 3)

	snap := job.Snapshot()
	if snap.Progress.Words != 412 {
		t.Errorf("expected 412 words, got %d", snap.Progress.Words)
	}
	if snap.Progress.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", snap.Progress.Pages)
	}
}

func TestJob_SetPhraseCount(t *testing.T) {
	job := &Job{ID: "phrase-test", UpdatedAt: time.Now()}
	job.SetPhraseCount(7)

	snap := job.Snapshot()
	if snap.Progress.Phrases != 7 {
		t.Errorf("expected 7 phrases, got %d", snap.Progress.Phrases)
	}
}

func TestJob_SetResults(t *testing.T) {
	job := &Job{ID: "result-test", UpdatedAt: time.Now()}
	if job.Results() != nil {
		t.Fatal("expected nil results before matching")
	}

	pages := []PageRecords{
		{Page: 1, Records: []match.Record{{ID: 1, Label: "name", Text: "John Smith"}}},
		{Page: 2, Records: []match.Record{}},
	}
	job.SetResults(pages, 1)

	got := job.Results()
	if len(got) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(got))
	}
	if len(got[0].Records) != 1 || got[0].Records[0].Text != "John Smith" {
		t.Errorf("unexpected first page records: %+v", got[0].Records)
	}
	if job.Snapshot().Progress.Matches != 1 {
		t.Errorf("expected 1 match in progress, got %d", job.Snapshot().Progress.Matches)
	}
}

func TestJob_Rendered(t *testing.T) {
	job := &Job{ID: "render-test", UpdatedAt: time.Now()}
	if job.Rendered() != nil {
		t.Fatal("expected nil rendering before render phase")
	}
	job.SetRendered([]byte{0x89, 'P', 'N', 'G'})
	if got := job.Rendered(); len(got) != 4 {
		t.Errorf("expected 4 rendered bytes, got %d", len(got))
	}
}

func TestJob_SuppliedPhrases(t *testing.T) {
	job := &Job{ID: "supplied-test", UpdatedAt: time.Now()}
	if job.SuppliedPhrases() != nil {
		t.Fatal("expected nil supplied phrases by default")
	}
	job.SetSuppliedPhrases([]match.Phrase{{Text: "AF12 HPV", Label: "vehicle_reg"}})
	got := job.SuppliedPhrases()
	if len(got) != 1 || got[0].Text != "AF12 HPV" {
		t.Errorf("unexpected supplied phrases: %+v", got)
	}
}

func TestJob_MarkDuplicate(t *testing.T) {
	job := &Job{ID: "dup-test", Status: StatusQueued, UpdatedAt: time.Now()}
	job.MarkDuplicate("original-id")

	snap := job.Snapshot()
	if snap.Status != StatusDuplicate {
		t.Errorf("expected status %q, got %q", StatusDuplicate, snap.Status)
	}
	if snap.DuplicateOf != "original-id" {
		t.Errorf("expected duplicate_of %q, got %q", "original-id", snap.DuplicateOf)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestJobStore_RegisterHashDetectsDuplicate(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(&Job{ID: "first", UpdatedAt: time.Now()})
	store.Put(&Job{ID: "second", UpdatedAt: time.Now()})

	if orig, dup := store.RegisterHash("abc123", "first"); dup {
		t.Fatalf("expected first registration to own the hash, got duplicate of %q", orig)
	}
	orig, dup := store.RegisterHash("abc123", "second")
	if !dup {
		t.Fatal("expected second registration to be flagged as duplicate")
	}
	if orig != "first" {
		t.Errorf("expected original %q, got %q", "first", orig)
	}
}

func TestJobStore_RegisterHashSameJobIdempotent(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(&Job{ID: "only", UpdatedAt: time.Now()})

	store.RegisterHash("abc123", "only")
	if _, dup := store.RegisterHash("abc123", "only"); dup {
		t.Error("expected re-registration by the same job to not be a duplicate")
	}
}

func TestJobStore_RegisterHashIgnoresEvictedOwner(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)
	store.Put(&Job{ID: "gone", UpdatedAt: time.Now()})
	store.RegisterHash("abc123", "gone")

	time.Sleep(100 * time.Millisecond)
	store.Cleanup()

	store.Put(&Job{ID: "fresh", UpdatedAt: time.Now()})
	if orig, dup := store.RegisterHash("abc123", "fresh"); dup {
		t.Errorf("expected evicted owner to release the hash, got duplicate of %q", orig)
	}
}
