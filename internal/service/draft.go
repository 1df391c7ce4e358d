package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yumcart/backend/internal/types"
)

const draftKeyPrefix = "recipe:draft:"

// DraftService stores recipe drafts as JSON documents in Redis. Logical
// expiry is the draft's ExpiresAt: lookups treat an expired draft as
// missing and the cleanup sweeper removes the document together with its
// temporary image. The Redis TTL is only a safety net at twice the logical
// lifetime, so the sweeper sees expired documents before Redis drops them.
type DraftService struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewDraftService creates a draft store with the given logical lifetime.
func NewDraftService(client *redis.Client, ttl time.Duration) *DraftService {
	return &DraftService{redis: client, ttl: ttl}
}

// SaveDraft stamps lifecycle fields and writes the draft document. The
// caller supplies the draft id because the temporary image path embeds it.
func (s *DraftService) SaveDraft(ctx context.Context, draft *types.RecipeDraft) error {
	if draft.DraftID == "" {
		return errors.New("draft id is required")
	}

	now := time.Now().UTC()
	draft.Status = types.StatusDraft
	draft.CreatedAt = now
	draft.ExpiresAt = now.Add(s.ttl)

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := draftKeyPrefix + draft.DraftID
	if err := s.redis.Set(ctx, key, data, 2*s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a draft by id. Missing and logically expired drafts
// both yield ErrDraftNotFound.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*types.RecipeDraft, error) {
	data, err := s.redis.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft types.RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	if draft.Expired(time.Now().UTC()) {
		return nil, ErrDraftNotFound
	}

	return &draft, nil
}

// DeleteDraft removes a draft document.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

// ListExpired scans for drafts whose logical expiry has passed. Unreadable
// documents are skipped rather than failing the whole scan.
func (s *DraftService) ListExpired(ctx context.Context, now time.Time) ([]types.RecipeDraft, error) {
	var expired []types.RecipeDraft

	iter := s.redis.Scan(ctx, 0, draftKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var draft types.RecipeDraft
		if err := json.Unmarshal(data, &draft); err != nil {
			continue
		}
		if draft.Expired(now) {
			expired = append(expired, draft)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan drafts: %w", err)
	}

	return expired, nil
}
