package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
)

// DraftStore holds in-progress wizard submissions with a bounded lifetime.
type DraftStore interface {
	Get(ctx context.Context, memberID uint) (samiti.WizardDraft, error)
	Put(ctx context.Context, draft samiti.WizardDraft) error
	Delete(ctx context.Context, memberID uint) error
}

// ProfileSaver is the coordinator boundary the wizard commits through.
type ProfileSaver interface {
	Save(ctx context.Context, memberID uint, p samiti.ProfilePayload) error
}

// WizardUsecase drives a multi-step submission as a sequence of independent
// idempotent partial saves. Each completed step is committed immediately;
// the draft only remembers where the client left off.
type WizardUsecase struct {
	drafts DraftStore
	saver  ProfileSaver
}

func NewWizardUsecase(drafts DraftStore, saver ProfileSaver) *WizardUsecase {
	return &WizardUsecase{drafts: drafts, saver: saver}
}

// Resume returns the member's draft, creating a fresh step-zero draft when
// none exists or the previous one expired.
func (uc *WizardUsecase) Resume(ctx context.Context, memberID uint) (samiti.WizardDraft, error) {
	draft, err := uc.drafts.Get(ctx, memberID)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return samiti.WizardDraft{}, err
	}

	draft = samiti.WizardDraft{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Step:      0,
		UpdatedAt: time.Now(),
	}
	if err := uc.drafts.Put(ctx, draft); err != nil {
		return samiti.WizardDraft{}, err
	}
	return draft, nil
}

// Advance commits one step's section through the coordinator and then moves
// the draft forward. The draft is only written after the save succeeds, so a
// failed step leaves the client where it was.
func (uc *WizardUsecase) Advance(ctx context.Context, memberID uint, step int, section samiti.ProfilePayload) (samiti.WizardDraft, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Usecase.Advance")
	defer span.End()

	if step < 0 {
		err := domain.ValidationError{Reason: "step must not be negative"}
		span.RecordError(err)
		return samiti.WizardDraft{}, err
	}

	if !section.Empty() {
		if err := uc.saver.Save(ctx, memberID, section); err != nil {
			span.RecordError(errors.Wrap(err, "WizardUsecase.Advance: save failed"))
			return samiti.WizardDraft{}, err
		}
	}

	draft, err := uc.drafts.Get(ctx, memberID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			span.RecordError(err)
			return samiti.WizardDraft{}, err
		}
		draft = samiti.WizardDraft{ID: uuid.NewString(), MemberID: memberID}
	}

	draft.Payload = mergePayload(draft.Payload, section)
	draft.Step = step
	draft.UpdatedAt = time.Now()

	if err := uc.drafts.Put(ctx, draft); err != nil {
		span.RecordError(err)
		return samiti.WizardDraft{}, err
	}
	return draft, nil
}

// Complete discards the draft; the committed profile is already in place.
func (uc *WizardUsecase) Complete(ctx context.Context, memberID uint) error {
	return uc.drafts.Delete(ctx, memberID)
}

// mergePayload overlays the submitted sections onto the draft so Resume can
// replay what the client already entered. Untouched sections survive.
func mergePayload(base samiti.ProfilePayload, update samiti.ProfilePayload) samiti.ProfilePayload {
	if update.RegistrationDetail != nil {
		base.RegistrationDetail = update.RegistrationDetail
	}
	if len(update.Addresses) > 0 {
		base.Addresses = update.Addresses
	}
	if len(update.Phones) > 0 {
		base.Phones = update.Phones
	}
	if len(update.Emails) > 0 {
		base.Emails = update.Emails
	}
	if len(update.SocialLinks) > 0 {
		base.SocialLinks = update.SocialLinks
	}
	if len(update.KeyContacts) > 0 {
		base.KeyContacts = update.KeyContacts
	}
	if len(update.Certifications) > 0 {
		base.Certifications = update.Certifications
	}
	return base
}
