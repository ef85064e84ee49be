package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
)

type mockGeoRepo struct {
	createdKind  samiti.GeoKind
	createdInput samiti.GeoNodeInput
	createErr    error

	deletedKind   samiti.GeoKind
	deletedID     uint
	deletedPolicy domain.DeletePolicy
}

func (m *mockGeoRepo) List(ctx context.Context, kind samiti.GeoKind, filter samiti.GeoFilter) ([]samiti.GeoNode, error) {
	return []samiti.GeoNode{}, nil
}

func (m *mockGeoRepo) Create(ctx context.Context, kind samiti.GeoKind, input samiti.GeoNodeInput) (uint, error) {
	m.createdKind = kind
	m.createdInput = input
	if m.createErr != nil {
		return 0, m.createErr
	}
	return 1, nil
}

func (m *mockGeoRepo) Update(ctx context.Context, kind samiti.GeoKind, id uint, input samiti.GeoNodeInput) error {
	return nil
}

func (m *mockGeoRepo) Delete(ctx context.Context, kind samiti.GeoKind, id uint, policy domain.DeletePolicy) error {
	m.deletedKind = kind
	m.deletedID = id
	m.deletedPolicy = policy
	return nil
}

func TestGeoCreateRequiresName(t *testing.T) {
	uc := NewGeoUsecase(&mockGeoRepo{})

	_, err := uc.Create(context.Background(), samiti.GeoKindState, samiti.GeoNodeInput{Code: "MH"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGeoCreateRequiresParent(t *testing.T) {
	uc := NewGeoUsecase(&mockGeoRepo{})

	_, err := uc.Create(context.Background(), samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for district without state, got %v", err)
	}

	_, err = uc.Create(context.Background(), samiti.GeoKindTaluka, samiti.GeoNodeInput{Name: "Karveer"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for taluka without district, got %v", err)
	}
}

func TestGeoCreatePassesThrough(t *testing.T) {
	repo := &mockGeoRepo{}
	uc := NewGeoUsecase(repo)

	id, err := uc.Create(context.Background(), samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North", StateID: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1 got %d", id)
	}
	if repo.createdKind != samiti.GeoKindDistrict || repo.createdInput.StateID != 5 {
		t.Fatalf("unexpected repo call: %v %v", repo.createdKind, repo.createdInput)
	}
}

func TestGeoCreateDuplicatePropagates(t *testing.T) {
	repo := &mockGeoRepo{createErr: domain.DuplicateNameError{Kind: "district", Name: "North"}}
	uc := NewGeoUsecase(repo)

	_, err := uc.Create(context.Background(), samiti.GeoKindDistrict, samiti.GeoNodeInput{Name: "North", StateID: 5})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestGeoDeleteUsesPerKindPolicy(t *testing.T) {
	cases := []struct {
		kind samiti.GeoKind
		want domain.DeletePolicy
	}{
		{samiti.GeoKindState, domain.DeleteHard},
		{samiti.GeoKindDistrict, domain.DeleteHard},
		{samiti.GeoKindTaluka, domain.DeleteSoft},
		{samiti.GeoKindCity, domain.DeleteSoft},
	}

	for _, tc := range cases {
		repo := &mockGeoRepo{}
		uc := NewGeoUsecase(repo)

		if err := uc.Delete(context.Background(), tc.kind, 7); err != nil {
			t.Fatalf("delete %s failed: %v", tc.kind, err)
		}
		if repo.deletedPolicy != tc.want {
			t.Fatalf("delete %s: expected policy %v got %v", tc.kind, tc.want, repo.deletedPolicy)
		}
		if repo.deletedID != 7 {
			t.Fatalf("delete %s: expected id 7 got %d", tc.kind, repo.deletedID)
		}
	}
}
