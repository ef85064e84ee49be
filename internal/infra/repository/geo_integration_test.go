//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/infra/database/models"
)

func mustCreate(t *testing.T, repo *GeoRepository, kind samiti.GeoKind, input samiti.GeoNodeInput) uint {
	t.Helper()
	id, err := repo.Create(context.Background(), kind, input)
	if err != nil {
		t.Fatalf("create %s %q failed: %v", kind, input.Name, err)
	}
	return id
}

func countWhere(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestGeoCreateDuplicateNameScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewGeoRepository(db)
	ctx := context.Background()

	stateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North", StateID: stateID})

	_, err := repo.Create(ctx, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North", StateID: stateID})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}

	nodes, err := repo.List(ctx, samiti.GeoKindDistrict, samiti.GeoFilter{StateID: &stateID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "North" {
		t.Fatalf("store changed by failed create: %+v", nodes)
	}

	// Same name under a different parent is a different scope.
	otherStateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Karnataka", Code: "KA"})
	mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North", StateID: otherStateID})
}

func TestGeoStateDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewGeoRepository(db)
	ctx := context.Background()

	stateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	districtID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Kolhapur", StateID: stateID})
	mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Karvir", DistrictID: districtID})
	mustCreate(t, repo, samiti.GeoKindCity, samiti.GeoNodeInput{Name: "Ichalkaranji", DistrictID: districtID})

	siblingStateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Karnataka", Code: "KA"})
	siblingDistrictID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Belagavi", StateID: siblingStateID})
	mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Khanapur", DistrictID: siblingDistrictID})

	if err := repo.Delete(ctx, samiti.GeoKindState, stateID, domain.DeleteHard); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if n := countWhere(t, db, &models.District{}, "state_id = ?", stateID); n != 0 {
		t.Fatalf("expected no districts under deleted state, got %d", n)
	}
	if n := countWhere(t, db, &models.Taluka{}, "state_id = ?", stateID); n != 0 {
		t.Fatalf("expected no talukas under deleted state, got %d", n)
	}
	if n := countWhere(t, db, &models.City{}, "state_id = ?", stateID); n != 0 {
		t.Fatalf("expected no cities under deleted state, got %d", n)
	}

	if n := countWhere(t, db, &models.Taluka{}, "state_id = ?", siblingStateID); n != 1 {
		t.Fatalf("cascade leaked into sibling state: %d talukas left", n)
	}
}

func TestGeoDistrictDeleteLeavesSiblings(t *testing.T) {
	db := newTestDB(t)
	repo := NewGeoRepository(db)
	ctx := context.Background()

	stateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	doomedID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Kolhapur", StateID: stateID})
	mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Karvir", DistrictID: doomedID})
	siblingID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Sangli", StateID: stateID})
	mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Miraj", DistrictID: siblingID})

	if err := repo.Delete(ctx, samiti.GeoKindDistrict, doomedID, domain.DeleteHard); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if n := countWhere(t, db, &models.Taluka{}, "district_id = ?", doomedID); n != 0 {
		t.Fatalf("expected cascade to remove talukas, got %d", n)
	}
	if n := countWhere(t, db, &models.Taluka{}, "district_id = ?", siblingID); n != 1 {
		t.Fatalf("sibling district lost talukas: %d left", n)
	}
	if n := countWhere(t, db, &models.District{}, "state_id = ?", stateID); n != 1 {
		t.Fatalf("expected one district left, got %d", n)
	}
}

func TestGeoSoftDeletedTalukaStaysAddressable(t *testing.T) {
	db := newTestDB(t)
	repo := NewGeoRepository(db)
	ctx := context.Background()

	stateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	districtID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Kolhapur", StateID: stateID})
	talukaID := mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Karvir", DistrictID: districtID})

	if err := repo.Delete(ctx, samiti.GeoKindTaluka, talukaID, domain.DeleteSoft); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	nodes, err := repo.List(ctx, samiti.GeoKindTaluka, samiti.GeoFilter{DistrictID: &districtID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("soft-deleted taluka still listed: %+v", nodes)
	}

	// An address referencing the inactive taluka still saves and reads back.
	members := NewMemberRepository(db)
	memberID, err := members.Register(ctx, domain.RegisterMemberInput{OrganizationName: "Alpha"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	profiles := NewProfileRepository(db)
	err = profiles.Save(ctx, memberID, samiti.ProfilePayload{
		Addresses: []samiti.AddressInput{{
			Type:       samiti.AddressTypePermanent,
			StateID:    stateID,
			DistrictID: districtID,
			TalukaID:   talukaID,
		}},
	})
	if err != nil {
		t.Fatalf("save with inactive taluka failed: %v", err)
	}
	view, err := profiles.Get(ctx, memberID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.PermanentAddress.TalukaID != talukaID {
		t.Fatalf("address lost its taluka reference: %+v", view.PermanentAddress)
	}
}

func TestGeoDistrictMoveRealignsChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewGeoRepository(db)
	ctx := context.Background()

	oldStateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Maharashtra", Code: "MH"})
	newStateID := mustCreate(t, repo, samiti.GeoKindState, samiti.GeoNodeInput{Name: "Karnataka", Code: "KA"})
	districtID := mustCreate(t, repo, samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "Belagavi", StateID: oldStateID})
	talukaID := mustCreate(t, repo, samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Khanapur", DistrictID: districtID})
	mustCreate(t, repo, samiti.GeoKindCity, samiti.GeoNodeInput{Name: "Nippani", DistrictID: districtID})

	err := repo.Update(ctx, samiti.GeoKindDistrict, districtID, samiti.GeoNodeInput{Name: "Belagavi", StateID: newStateID})
	if err != nil {
		t.Fatalf("district move failed: %v", err)
	}

	nodes, err := repo.List(ctx, samiti.GeoKindTaluka, samiti.GeoFilter{StateID: &newStateID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].ID != talukaID {
		t.Fatalf("taluka did not follow its district to the new state: %+v", nodes)
	}
	if n := countWhere(t, db, &models.Taluka{}, "state_id = ?", oldStateID); n != 0 {
		t.Fatalf("taluka still attached to the old state")
	}
	if n := countWhere(t, db, &models.City{}, "state_id = ?", newStateID); n != 1 {
		t.Fatalf("city did not follow its district to the new state")
	}

	// The full chain under the new state validates for address writes.
	members := NewMemberRepository(db)
	memberID, err := members.Register(ctx, domain.RegisterMemberInput{OrganizationName: "Alpha"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	profiles := NewProfileRepository(db)
	err = profiles.Save(ctx, memberID, samiti.ProfilePayload{
		Addresses: []samiti.AddressInput{{
			Type:       samiti.AddressTypePermanent,
			StateID:    newStateID,
			DistrictID: districtID,
			TalukaID:   talukaID,
		}},
	})
	if err != nil {
		t.Fatalf("address under the moved district rejected: %v", err)
	}
}
