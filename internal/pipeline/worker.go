package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docredact/internal/classify"
	"github.com/dgallion1/docredact/internal/config"
	"github.com/dgallion1/docredact/internal/match"
	"github.com/dgallion1/docredact/internal/notify"
	"github.com/dgallion1/docredact/internal/ocr"
	"github.com/dgallion1/docredact/internal/render"
)

// Worker processes a single redaction job.
type Worker struct {
	classifier *classify.Client
	notifier   *notify.Client
	store      *JobStore
	log        *slog.Logger
	cfg        config.Config
	ocrCfg     ocr.Config
}

func NewWorker(classifier *classify.Client, notifier *notify.Client, store *JobStore, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		classifier: classifier,
		notifier:   notifier,
		store:      store,
		log:        log,
		cfg:        cfg,
		ocrCfg:     ocr.Config{Languages: cfg.OCRLanguages},
	}
}

// Process runs the full redaction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Duplicate check on the raw upload bytes.
	hash := ContentHashHex(job.FileData())
	job.SetContentHash(hash)
	if job.Force {
		w.store.RegisterHash(hash, job.ID)
	} else if origID, dup := w.store.RegisterHash(hash, job.ID); dup {
		log.Info("duplicate upload, skipping", "original_job_id", origID)
		job.MarkDuplicate(origID)
		w.sendCallback(ctx, job, log)
		return
	}

	// Phase 1: Recognize
	job.SetStatus(StatusRecognizing, "recognizing")
	engine, err := ocr.ForFile(job.Filename, w.ocrCfg)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "recognizing")
		w.sendCallback(ctx, job, log)
		return
	}

	result, err := engine.Recognize(ctx, job.FileData())
	if err != nil {
		log.Error("recognition failed", "error", err)
		job.AddError(fmt.Sprintf("recognize: %s", err))
		job.SetStatus(StatusFailed, "recognizing")
		w.sendCallback(ctx, job, log)
		return
	}
	job.SetRecognized(len(result.Words), len(result.Pages))
	log.Info("recognized document", "words", len(result.Words), "pages", len(result.Pages))

	if len(result.Words) == 0 {
		// Zero words is almost always a recognition problem, not a genuinely
		// blank document. Completing here would report the document clean
		// without ever having read it.
		log.Warn("no recognizable text")
		job.AddError("no recognizable text")
		job.SetStatus(StatusFailed, "recognizing")
		w.sendCallback(ctx, job, log)
		return
	}

	// Phase 2: Classify, unless the caller supplied phrases.
	phrases := job.SuppliedPhrases()
	hadErrors := false
	if len(phrases) == 0 {
		var failed int
		phrases, failed = w.classifyText(ctx, job, result.Text, log)
		hadErrors = failed > 0
	} else {
		job.SetPhraseCount(len(phrases))
	}

	if len(phrases) == 0 && hadErrors {
		job.SetStatus(StatusFailed, "classifying")
		w.sendCallback(ctx, job, log)
		return
	}

	// Phase 3: Match
	job.SetStatus(StatusMatching, "matching")
	records := match.FindAll(result.Words, phrases)
	job.SetResults(groupByPage(records, result.Pages), len(records))
	log.Info("matching complete", "phrases", len(phrases), "matches", len(records))

	// Phase 4: Render a redacted image for raster inputs. PDF and hOCR jobs
	// return geometry only.
	if ocr.IsRasterExtension(job.Filename) {
		job.SetStatus(StatusRendering, "rendering")
		redacted, err := render.Redact(job.FileData(), records)
		if err != nil {
			log.Error("render failed", "error", err)
			job.AddError(fmt.Sprintf("render: %s", err))
			hadErrors = true
		} else {
			job.SetRendered(redacted)
		}
	}

	if hadErrors && len(records) > 0 {
		job.SetStatus(StatusPartial, "done")
	} else if hadErrors {
		job.SetStatus(StatusFailed, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	w.sendCallback(ctx, job, log)
}

// classifyText runs the pattern stage and, when a model client is configured,
// the model stage over overlapping segments with bounded concurrency. Returns
// matcher phrases and the number of segments that failed after retries.
func (w *Worker) classifyText(ctx context.Context, job *Job, text string, log *slog.Logger) ([]match.Phrase, int) {
	job.SetStatus(StatusClassifying, "classifying")

	detections := classify.ClassifyPatterns(text)
	log.Info("pattern classification", "detections", len(detections))

	failed := 0
	if w.classifier != nil {
		segments := classify.SplitText(text, w.cfg.SegmentChars, w.cfg.SegmentOverlap)

		type segResult struct {
			detections []classify.Detection
			err        error
			idx        int
		}
		results := make(chan segResult, len(segments))
		sem := make(chan struct{}, w.cfg.MaxConcurrentClassify)

		for i, seg := range segments {
			sem <- struct{}{}
			go func(i int, seg string) {
				defer func() { <-sem }()
				var dets []classify.Detection
				var lastErr error
				for attempt := 0; attempt < MaxRetries; attempt++ {
					dets, lastErr = w.classifier.Classify(ctx, seg)
					if lastErr == nil || !IsRetryable(lastErr) {
						break
					}
					log.Warn("retryable classify error", "segment", i, "attempt", attempt, "error", lastErr)
					select {
					case <-time.After(Backoff(attempt)):
					case <-ctx.Done():
						results <- segResult{err: ctx.Err(), idx: i}
						return
					}
				}
				results <- segResult{detections: dets, err: lastErr, idx: i}
			}(i, seg)
		}

		for range segments {
			r := <-results
			if r.err != nil {
				log.Error("classification failed", "segment", r.idx, "error", r.err)
				job.AddError(fmt.Sprintf("segment %d: %s", r.idx, r.err))
				failed++
				continue
			}
			detections = append(detections, r.detections...)
		}
	}

	merged := classify.Merge(detections)
	job.SetPhraseCount(len(merged))
	log.Info("classification complete", "phrases", len(merged), "failed_segments", failed)
	return classify.Phrases(merged), failed
}

// sendCallback fires the completion webhook. The notify client no-ops when
// neither the job nor the service has a callback URL.
func (w *Worker) sendCallback(ctx context.Context, job *Job, log *slog.Logger) {
	if w.notifier == nil {
		return
	}

	snap := job.Snapshot()
	var records []match.Record
	for _, page := range job.Results() {
		records = append(records, page.Records...)
	}
	err := w.notifier.JobCompleted(ctx, job.CallbackURL, notify.Completion{
		JobID:       snap.ID,
		Status:      string(snap.Status),
		Filename:    snap.Filename,
		ContentHash: snap.ContentHash,
		Words:       snap.Progress.Words,
		Phrases:     snap.Progress.Phrases,
		Pages:       snap.Progress.Pages,
		Matches:     snap.Progress.Matches,
		Records:     records,
		Errors:      snap.Progress.Errors,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Warn("completion callback failed", "error", err)
	}
}

// groupByPage splits the flat record list by the page each match starts on.
// Every recognized page appears in the output, matched or not.
func groupByPage(records []match.Record, pages []ocr.PageSpan) []PageRecords {
	if len(pages) == 0 {
		pages = []ocr.PageSpan{{Number: 1, Start: 0, End: 0}}
	}
	grouped := make([]PageRecords, len(pages))
	for i, span := range pages {
		grouped[i] = PageRecords{Page: span.Number, Records: []match.Record{}}
	}
	for _, rec := range records {
		first := firstWordIndex(rec.WordIndices)
		idx := 0
		for i, span := range pages {
			if first >= span.Start && first < span.End {
				idx = i
				break
			}
		}
		grouped[idx].Records = append(grouped[idx].Records, rec)
	}
	return grouped
}

// firstWordIndex is the smallest covered position. Scattered matches may
// claim words out of ascending order.
func firstWordIndex(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	min := indices[0]
	for _, i := range indices[1:] {
		if i < min {
			min = i
		}
	}
	return min
}
