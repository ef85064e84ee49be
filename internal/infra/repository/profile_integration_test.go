//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/infra/database/models"
)

func TestProfileSaveUpsertsAreIdempotent(t *testing.T) {
	db := newTestDB(t)
	geo := NewGeoRepository(db)
	members := NewMemberRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	stateID := mustCreate(t, geo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	memberID, err := members.Register(ctx, domain.RegisterMemberInput{OrganizationName: "Alpha"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	payload := samiti.ProfilePayload{
		RegistrationDetail: &samiti.RegistrationDetailInput{
			OrganizationName:   "Alpha",
			RegistrationNumber: "REG-1",
			RegistrationDate:   "2024-03-01",
		},
		Addresses: []samiti.AddressInput{{
			Type:    samiti.AddressTypePermanent,
			Line1:   "12 Market Road",
			StateID: stateID,
			Pincode: "416001",
		}},
	}

	for i := 0; i < 2; i++ {
		if err := profiles.Save(ctx, memberID, payload); err != nil {
			t.Fatalf("save %d failed: %v", i+1, err)
		}
	}

	if n := countWhere(t, db, &models.RegistrationDetail{}, "member_id = ?", memberID); n != 1 {
		t.Fatalf("expected one registration detail row, got %d", n)
	}
	if n := countWhere(t, db, &models.Address{}, "member_id = ?", memberID); n != 1 {
		t.Fatalf("expected one address row, got %d", n)
	}

	// A later partial save leaves the untouched section alone.
	err = profiles.Save(ctx, memberID, samiti.ProfilePayload{
		RegistrationDetail: &samiti.RegistrationDetailInput{OrganizationName: "Beta"},
	})
	if err != nil {
		t.Fatalf("partial save failed: %v", err)
	}
	view, err := profiles.Get(ctx, memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.RegistrationDetail.OrganizationName != "Beta" {
		t.Fatalf("registration detail not overwritten: %+v", view.RegistrationDetail)
	}
	if view.PermanentAddress.Line1 != "12 Market Road" {
		t.Fatalf("partial save touched the address: %+v", view.PermanentAddress)
	}
}

func TestProfileSaveCollapsesPhonesToOne(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	memberID, err := members.Register(ctx, domain.RegisterMemberInput{OrganizationName: "Alpha"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err = profiles.Save(ctx, memberID, samiti.ProfilePayload{
		Phones: []samiti.PhoneInput{
			{Number: "020-1111111", Kind: "landline"},
			{Number: "98220-22222", Kind: "mobile"},
		},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if n := countWhere(t, db, &models.Phone{}, "member_id = ?", memberID); n != 1 {
		t.Fatalf("expected one phone row, got %d", n)
	}
	view, err := profiles.Get(ctx, memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(view.Phones) != 1 || view.Phones[0].Number != "98220-22222" {
		t.Fatalf("expected the last phone to win, got %+v", view.Phones)
	}
}

func TestProfileSaveRollsBackAtomically(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	memberID, err := members.Register(ctx, domain.RegisterMemberInput{OrganizationName: "Alpha"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err = profiles.Save(ctx, memberID, samiti.ProfilePayload{
		RegistrationDetail: &samiti.RegistrationDetailInput{OrganizationName: "Alpha"},
		Phones:             []samiti.PhoneInput{{Number: "98220-22222"}},
		Addresses: []samiti.AddressInput{{
			Type:    samiti.AddressTypePermanent,
			StateID: 9999,
		}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown state, got %v", err)
	}

	if n := countWhere(t, db, &models.RegistrationDetail{}, "member_id = ?", memberID); n != 0 {
		t.Fatalf("registration detail survived the rollback")
	}
	if n := countWhere(t, db, &models.Phone{}, "member_id = ?", memberID); n != 0 {
		t.Fatalf("phone survived the rollback")
	}
}

func TestProfileSaveUnknownMemberWritesNothing(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	err := profiles.Save(ctx, 999, samiti.ProfilePayload{
		RegistrationDetail: &samiti.RegistrationDetailInput{OrganizationName: "Ghost"},
	})
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
	if n := countWhere(t, db, &models.RegistrationDetail{}, "member_id = ?", 999); n != 0 {
		t.Fatalf("rows written for unknown member")
	}
}
