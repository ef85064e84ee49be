package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opensamaj/samiti/internal/domain"
)

// MemberRepository defines persistence for the identity anchor rows.
type MemberRepository interface {
	Register(ctx context.Context, input domain.RegisterMemberInput) (uint, error)
	SetStatus(ctx context.Context, memberID uint, status string) error
	SweepExpired(ctx context.Context, now time.Time) ([]uint, error)
}

type MemberUsecase struct {
	repo  MemberRepository
	cache ViewCache
}

func NewMemberUsecase(repo MemberRepository, cache ViewCache) *MemberUsecase {
	return &MemberUsecase{repo: repo, cache: cache}
}

func (uc *MemberUsecase) Register(ctx context.Context, input domain.RegisterMemberInput) (uint, error) {
	if input.OrganizationName == "" {
		return 0, domain.ValidationError{Reason: "organization name is required"}
	}
	return uc.repo.Register(ctx, input)
}

// SetStatus writes the new status and drops the member's cached view, so the
// reader never serves the old status past the commit.
func (uc *MemberUsecase) SetStatus(ctx context.Context, memberID uint, status string) error {
	if !domain.ValidStatus(status) {
		return domain.ValidationError{Reason: fmt.Sprintf("unknown status %q", status)}
	}
	if err := uc.repo.SetStatus(ctx, memberID, status); err != nil {
		return err
	}
	uc.invalidateView(ctx, memberID)
	return nil
}

// SweepExpired deactivates lapsed memberships and invalidates the cached view
// of every member it touched. The caller decides when to run it; the core has
// no scheduler of its own.
func (uc *MemberUsecase) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	ids, err := uc.repo.SweepExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		uc.invalidateView(ctx, id)
	}
	return int64(len(ids)), nil
}

func (uc *MemberUsecase) invalidateView(ctx context.Context, memberID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(profileCacheKey(memberID)); err != nil {
		slog.WarnContext(ctx, "profile cache invalidation failed",
			slog.Uint64("memberId", uint64(memberID)),
			slog.String("error", err.Error()),
		)
	}
}
