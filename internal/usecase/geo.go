package usecase

import (
	"context"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
)

// GeoRepository defines storage operations for the reference hierarchy.
type GeoRepository interface {
	List(ctx context.Context, kind samiti.GeoKind, filter samiti.GeoFilter) ([]samiti.GeoNode, error)
	Create(ctx context.Context, kind samiti.GeoKind, input samiti.GeoNodeInput) (uint, error)
	Update(ctx context.Context, kind samiti.GeoKind, id uint, input samiti.GeoNodeInput) error
	Delete(ctx context.Context, kind samiti.GeoKind, id uint, policy domain.DeletePolicy) error
}

type GeoUsecase struct {
	repo GeoRepository
}

func NewGeoUsecase(repo GeoRepository) *GeoUsecase {
	return &GeoUsecase{repo: repo}
}

func (uc *GeoUsecase) List(ctx context.Context, kind samiti.GeoKind, filter samiti.GeoFilter) ([]samiti.GeoNode, error) {
	return uc.repo.List(ctx, kind, filter)
}

func (uc *GeoUsecase) Create(ctx context.Context, kind samiti.GeoKind, input samiti.GeoNodeInput) (uint, error) {
	if err := validateGeoInput(kind, input); err != nil {
		return 0, err
	}
	return uc.repo.Create(ctx, kind, input)
}

func (uc *GeoUsecase) Update(ctx context.Context, kind samiti.GeoKind, id uint, input samiti.GeoNodeInput) error {
	if input.Name == "" {
		return domain.ValidationError{Reason: "name is required"}
	}
	return uc.repo.Update(ctx, kind, id, input)
}

// Delete looks up the per-kind lifecycle policy and hands it to the store,
// so hard versus soft deletion stays a configuration rather than a code
// path per kind.
func (uc *GeoUsecase) Delete(ctx context.Context, kind samiti.GeoKind, id uint) error {
	return uc.repo.Delete(ctx, kind, id, domain.DeletePolicyFor(kind))
}

func validateGeoInput(kind samiti.GeoKind, input samiti.GeoNodeInput) error {
	if input.Name == "" {
		return domain.ValidationError{Reason: "name is required"}
	}
	switch kind {
	case samiti.GeoKindState:
		if input.Code == "" {
			return domain.ValidationError{Reason: "state code is required"}
		}
	case samiti.GeoKindDistrict:
		if input.StateID == 0 {
			return domain.ValidationError{Reason: "state id is required"}
		}
	case samiti.GeoKindTaluka, samiti.GeoKindCity:
		if input.DistrictID == 0 {
			return domain.ValidationError{Reason: "district id is required"}
		}
	}
	return nil
}
