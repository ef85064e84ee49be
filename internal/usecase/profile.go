package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
)

var tracer = otel.Tracer("usecase")

// ProfileRepository defines the transactional storage operations behind the
// profile write and read paths.
type ProfileRepository interface {
	Save(ctx context.Context, memberID uint, p samiti.ProfilePayload) error
	Get(ctx context.Context, memberID uint) (samiti.ProfileView, error)
	ListAll(ctx context.Context, column string, desc bool) ([]samiti.ProfileView, error)
}

// ViewCache is the optional read-through cache for assembled profile views.
type ViewCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// EventPublisher pushes change-feed events after a commit.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event samiti.Event) error
}

// ProfileUsecase coordinates the atomic multi-section upsert.
type ProfileUsecase struct {
	repo   ProfileRepository
	cache  ViewCache
	signal EventPublisher
}

func NewProfileUsecase(repo ProfileRepository, cache ViewCache, signal EventPublisher) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, cache: cache, signal: signal}
}

// Save persists one submission atomically. Callers see a complete success
// or a complete no-op, never a half-written profile.
func (uc *ProfileUsecase) Save(ctx context.Context, memberID uint, p samiti.ProfilePayload) error {
	ctx, span := tracer.Start(ctx, "Profile.Usecase.Save")
	defer span.End()

	for _, a := range p.Addresses {
		if a.Type != samiti.AddressTypePermanent && a.Type != samiti.AddressTypeCommunication {
			err := domain.ValidationError{Reason: fmt.Sprintf("unknown address type %q", a.Type)}
			span.RecordError(err)
			return err
		}
	}

	if err := uc.repo.Save(ctx, memberID, p); err != nil {
		span.RecordError(errors.Wrap(err, "ProfileUsecase.Save: repo.Save failed"))
		if errors.Is(err, domain.ErrMemberNotFound) || errors.Is(err, domain.ErrValidation) {
			return err
		}
		return domain.PersistenceError{Err: err}
	}

	// Post-commit side effects are best effort: the committed state is the
	// source of truth and readers fall back to it on a cache miss.
	if uc.cache != nil {
		if err := uc.cache.Delete(profileCacheKey(memberID)); err != nil {
			slog.WarnContext(ctx, "profile cache invalidation failed",
				slog.Uint64("memberId", uint64(memberID)),
				slog.String("error", err.Error()),
			)
		}
	}
	if uc.signal != nil {
		event := samiti.Event{
			Type:      samiti.EventProfileUpdated,
			MemberID:  memberID,
			Timestamp: time.Now(),
		}
		if err := uc.signal.Publish(ctx, samiti.EventProfileUpdated, event); err != nil {
			slog.WarnContext(ctx, "profile event publish failed",
				slog.Uint64("memberId", uint64(memberID)),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func profileCacheKey(memberID uint) string {
	return fmt.Sprintf("profile:%d", memberID)
}

// ReaderUsecase assembles denormalized profile views. Read-only.
type ReaderUsecase struct {
	repo  ProfileRepository
	cache ViewCache
}

func NewReaderUsecase(repo ProfileRepository, cache ViewCache) *ReaderUsecase {
	return &ReaderUsecase{repo: repo, cache: cache}
}

func (uc *ReaderUsecase) Get(ctx context.Context, memberID uint) (samiti.ProfileView, error) {
	ctx, span := tracer.Start(ctx, "Reader.Usecase.Get")
	defer span.End()

	key := profileCacheKey(memberID)
	if uc.cache != nil {
		if raw, err := uc.cache.Get(key); err == nil {
			var view samiti.ProfileView
			if err := json.Unmarshal(raw, &view); err == nil {
				return view, nil
			}
		}
	}

	view, err := uc.repo.Get(ctx, memberID)
	if err != nil {
		span.RecordError(err)
		return samiti.ProfileView{}, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err := uc.cache.Set(key, raw); err != nil {
				slog.WarnContext(ctx, "profile cache write failed",
					slog.Uint64("memberId", uint64(memberID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return view, nil
}

func (uc *ReaderUsecase) ListAll(ctx context.Context, sortKey string, direction string) ([]samiti.ProfileView, error) {
	ctx, span := tracer.Start(ctx, "Reader.Usecase.ListAll")
	defer span.End()

	if sortKey == "" {
		sortKey = domain.SortByID
	}
	column, ok := domain.SortColumn(sortKey)
	if !ok {
		err := domain.ValidationError{Reason: fmt.Sprintf("unknown sort key %q", sortKey)}
		span.RecordError(err)
		return nil, err
	}

	var desc bool
	switch direction {
	case "", "asc":
		desc = false
	case "desc":
		desc = true
	default:
		err := domain.ValidationError{Reason: fmt.Sprintf("unknown sort direction %q", direction)}
		span.RecordError(err)
		return nil, err
	}

	views, err := uc.repo.ListAll(ctx, column, desc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return views, nil
}
