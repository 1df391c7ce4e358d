package service

import (
	"context"
	"log"
	"time"

	"github.com/yumcart/backend/internal/types"
)

// DraftLister is the slice of the draft store the cleanup sweeper needs.
type DraftLister interface {
	ListExpired(ctx context.Context, now time.Time) ([]types.RecipeDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// ImageDeleter removes a stored image by object key.
type ImageDeleter interface {
	DeleteImage(ctx context.Context, key string) error
}

// CleanupResult records the outcome of removing one expired draft.
type CleanupResult struct {
	DraftID   string
	Succeeded bool
	Reason    string
}

// CleanupReport aggregates one sweep's per-draft outcomes.
type CleanupReport struct {
	Results []CleanupResult
}

// Succeeded counts fully removed drafts.
func (r CleanupReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Succeeded {
			n++
		}
	}
	return n
}

// Failed counts drafts whose removal failed at least partially.
func (r CleanupReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// CleanupService periodically removes expired drafts and their temporary
// images. Per-draft failures are reported and logged, never aborting the
// sweep.
type CleanupService struct {
	drafts   DraftLister
	images   ImageDeleter
	interval time.Duration
}

func NewCleanupService(drafts DraftLister, images ImageDeleter, interval time.Duration) *CleanupService {
	return &CleanupService{
		drafts:   drafts,
		images:   images,
		interval: interval,
	}
}

// Start runs the sweep on a fixed interval until the context is cancelled.
func (s *CleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Cleanup] sweeper stopped")
			return
		case <-ticker.C:
			report, err := s.RunOnce(ctx)
			if err != nil {
				log.Printf("[Cleanup] sweep failed: %v", err)
				continue
			}
			log.Printf("[Cleanup] removed %d expired drafts (%d failures)",
				report.Succeeded(), report.Failed())
		}
	}
}

// RunOnce performs a single sweep and returns the per-draft report. The
// returned error covers only the expired-draft scan itself.
func (s *CleanupService) RunOnce(ctx context.Context) (CleanupReport, error) {
	expired, err := s.drafts.ListExpired(ctx, time.Now().UTC())
	if err != nil {
		return CleanupReport{}, err
	}

	var report CleanupReport
	for _, draft := range expired {
		result := CleanupResult{DraftID: draft.DraftID, Succeeded: true}

		if draft.ImagePath != "" {
			if err := s.images.DeleteImage(ctx, draft.ImagePath); err != nil {
				log.Printf("[Cleanup] failed to delete image for draft %s: %v", draft.DraftID, err)
				result.Succeeded = false
				result.Reason = "image deletion failed: " + err.Error()
			}
		}

		if err := s.drafts.DeleteDraft(ctx, draft.DraftID); err != nil {
			log.Printf("[Cleanup] failed to delete draft %s: %v", draft.DraftID, err)
			result.Succeeded = false
			result.Reason = "draft deletion failed: " + err.Error()
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}
