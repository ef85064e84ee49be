package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
)

// DraftRepository keeps in-progress wizard submissions in redis with an
// explicit TTL, separate from the committed profile tables. An abandoned
// draft simply expires.
type DraftRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{rdb: rdb, ttl: ttl}
}

func draftKey(memberID uint) string {
	return fmt.Sprintf("wizard:%d", memberID)
}

func (r *DraftRepository) Get(ctx context.Context, memberID uint) (samiti.WizardDraft, error) {
	raw, err := r.rdb.Get(ctx, draftKey(memberID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return samiti.WizardDraft{}, domain.NotFoundError{Resource: "draft"}
		}
		return samiti.WizardDraft{}, err
	}

	var draft samiti.WizardDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return samiti.WizardDraft{}, err
	}
	return draft, nil
}

func (r *DraftRepository) Put(ctx context.Context, draft samiti.WizardDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, draftKey(draft.MemberID), raw, r.ttl).Err()
}

func (r *DraftRepository) Delete(ctx context.Context, memberID uint) error {
	return r.rdb.Del(ctx, draftKey(memberID)).Err()
}
