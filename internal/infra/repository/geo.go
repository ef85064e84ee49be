package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/infra/database/models"
)

type GeoRepository struct {
	db *gorm.DB
}

func NewGeoRepository(db *gorm.DB) *GeoRepository {
	return &GeoRepository{db: db}
}

// List returns active nodes of one kind, name ascending. Parent filters
// apply where the kind has that parent.
func (r *GeoRepository) List(ctx context.Context, kind samiti.GeoKind, filter samiti.GeoFilter) ([]samiti.GeoNode, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc")

	nodes := []samiti.GeoNode{}
	switch kind {
	case samiti.GeoKindState:
		var rows []models.State
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			nodes = append(nodes, samiti.GeoNode{ID: row.ID, Name: row.Name, Code: row.Code, IsActive: row.IsActive})
		}
	case samiti.GeoKindDistrict:
		if filter.StateID != nil {
			q = q.Where("state_id = ?", *filter.StateID)
		}
		var rows []models.District
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			nodes = append(nodes, samiti.GeoNode{ID: row.ID, Name: row.Name, StateID: row.StateID, IsActive: row.IsActive})
		}
	case samiti.GeoKindTaluka:
		if filter.StateID != nil {
			q = q.Where("state_id = ?", *filter.StateID)
		}
		if filter.DistrictID != nil {
			q = q.Where("district_id = ?", *filter.DistrictID)
		}
		var rows []models.Taluka
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			nodes = append(nodes, samiti.GeoNode{ID: row.ID, Name: row.Name, StateID: row.StateID, DistrictID: row.DistrictID, IsActive: row.IsActive})
		}
	case samiti.GeoKindCity:
		if filter.StateID != nil {
			q = q.Where("state_id = ?", *filter.StateID)
		}
		if filter.DistrictID != nil {
			q = q.Where("district_id = ?", *filter.DistrictID)
		}
		var rows []models.City
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			nodes = append(nodes, samiti.GeoNode{ID: row.ID, Name: row.Name, StateID: row.StateID, DistrictID: row.DistrictID, IsActive: row.IsActive})
		}
	default:
		return nil, domain.ValidationError{Reason: fmt.Sprintf("unknown hierarchy level %q", kind)}
	}

	return nodes, nil
}

// Create inserts one node. A name collision inside the parent scope comes
// back as DuplicateNameError; a missing parent as NotFoundError.
func (r *GeoRepository) Create(ctx context.Context, kind samiti.GeoKind, input samiti.GeoNodeInput) (uint, error) {
	switch kind {
	case samiti.GeoKindState:
		row := models.State{Name: input.Name, Code: input.Code, IsActive: true}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, translateGeoError(err, kind, input.Name)
		}
		return row.ID, nil
	case samiti.GeoKindDistrict:
		row := models.District{Name: input.Name, StateID: input.StateID, IsActive: true}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, translateGeoError(err, kind, input.Name)
		}
		return row.ID, nil
	case samiti.GeoKindTaluka:
		stateID, err := r.districtStateID(ctx, r.db, input.DistrictID, input.StateID)
		if err != nil {
			return 0, err
		}
		row := models.Taluka{Name: input.Name, DistrictID: input.DistrictID, StateID: stateID, IsActive: true}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, translateGeoError(err, kind, input.Name)
		}
		return row.ID, nil
	case samiti.GeoKindCity:
		stateID, err := r.districtStateID(ctx, r.db, input.DistrictID, input.StateID)
		if err != nil {
			return 0, err
		}
		row := models.City{Name: input.Name, DistrictID: input.DistrictID, StateID: stateID, IsActive: true}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return 0, translateGeoError(err, kind, input.Name)
		}
		return row.ID, nil
	}
	return 0, domain.ValidationError{Reason: fmt.Sprintf("unknown hierarchy level %q", kind)}
}

// Update renames a node and may move it under a new parent scope. Zero-valued
// parent ids and a blank state code mean "keep the current value"; only the
// name is always written. Moving a district carries its talukas and cities
// along so their denormalized state reference keeps matching the district's.
func (r *GeoRepository) Update(ctx context.Context, kind samiti.GeoKind, id uint, input samiti.GeoNodeInput) error {
	switch kind {
	case samiti.GeoKindState:
		values := map[string]any{"name": input.Name}
		if input.Code != "" {
			values["code"] = input.Code
		}
		return r.applyUpdate(r.db.WithContext(ctx), &models.State{}, id, kind, input.Name, values)
	case samiti.GeoKindDistrict:
		values := map[string]any{"name": input.Name}
		if input.StateID == 0 {
			return r.applyUpdate(r.db.WithContext(ctx), &models.District{}, id, kind, input.Name, values)
		}
		values["state_id"] = input.StateID
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := r.applyUpdate(tx, &models.District{}, id, kind, input.Name, values); err != nil {
				return err
			}
			err := tx.Model(&models.Taluka{}).
				Where("district_id = ?", id).
				Update("state_id", input.StateID).Error
			if err != nil {
				return err
			}
			return tx.Model(&models.City{}).
				Where("district_id = ?", id).
				Update("state_id", input.StateID).Error
		})
	case samiti.GeoKindTaluka:
		values := map[string]any{"name": input.Name}
		if input.DistrictID != 0 {
			stateID, err := r.districtStateID(ctx, r.db, input.DistrictID, input.StateID)
			if err != nil {
				return err
			}
			values["district_id"] = input.DistrictID
			values["state_id"] = stateID
		}
		return r.applyUpdate(r.db.WithContext(ctx), &models.Taluka{}, id, kind, input.Name, values)
	case samiti.GeoKindCity:
		values := map[string]any{"name": input.Name}
		if input.DistrictID != 0 {
			stateID, err := r.districtStateID(ctx, r.db, input.DistrictID, input.StateID)
			if err != nil {
				return err
			}
			values["district_id"] = input.DistrictID
			values["state_id"] = stateID
		}
		return r.applyUpdate(r.db.WithContext(ctx), &models.City{}, id, kind, input.Name, values)
	}
	return domain.ValidationError{Reason: fmt.Sprintf("unknown hierarchy level %q", kind)}
}

// Delete applies the per-kind lifecycle policy: hard removal rides the
// ON DELETE CASCADE constraints in a single statement, soft removal only
// flips is_active so existing address references keep resolving.
func (r *GeoRepository) Delete(ctx context.Context, kind samiti.GeoKind, id uint, policy domain.DeletePolicy) error {
	var model any
	switch kind {
	case samiti.GeoKindState:
		model = &models.State{}
	case samiti.GeoKindDistrict:
		model = &models.District{}
	case samiti.GeoKindTaluka:
		model = &models.Taluka{}
	case samiti.GeoKindCity:
		model = &models.City{}
	default:
		return domain.ValidationError{Reason: fmt.Sprintf("unknown hierarchy level %q", kind)}
	}

	var res *gorm.DB
	switch policy {
	case domain.DeleteHard:
		res = r.db.WithContext(ctx).Delete(model, id)
	case domain.DeleteSoft:
		res = r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("is_active", false)
	default:
		return domain.ValidationError{Reason: "unknown delete policy"}
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: string(kind)}
	}
	return nil
}

func (r *GeoRepository) applyUpdate(db *gorm.DB, model any, id uint, kind samiti.GeoKind, name string, values map[string]any) error {
	res := db.Model(model).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return translateGeoError(res.Error, kind, name)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: string(kind)}
	}
	return nil
}

// districtStateID resolves the parent district and returns its state id,
// which the taluka/city row denormalizes. A caller-supplied state id that
// disagrees with the district is rejected rather than stored.
func (r *GeoRepository) districtStateID(ctx context.Context, db *gorm.DB, districtID uint, claimedStateID uint) (uint, error) {
	if districtID == 0 {
		return 0, domain.ValidationError{Reason: "district id is required"}
	}
	var district models.District
	err := db.WithContext(ctx).Take(&district, districtID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.NotFoundError{Resource: "district"}
		}
		return 0, err
	}
	if claimedStateID != 0 && claimedStateID != district.StateID {
		return 0, domain.ValidationError{Reason: "district does not belong to the given state"}
	}
	return district.StateID, nil
}

func translateGeoError(err error, kind samiti.GeoKind, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.DuplicateNameError{Kind: string(kind), Name: name}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NotFoundError{Resource: "parent node"}
	}
	return err
}

// validateGeoChain checks an address's location ids against the hierarchy on
// the given handle, so the profile save transaction sees the same snapshot
// it writes against. Inactive talukas and cities still validate: their rows
// stay addressable after a soft delete.
func validateGeoChain(ctx context.Context, tx *gorm.DB, a samiti.AddressInput) error {
	if a.StateID != 0 {
		var state models.State
		if err := tx.WithContext(ctx).Take(&state, a.StateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ValidationError{Reason: fmt.Sprintf("state %d not found", a.StateID)}
			}
			return err
		}
	}
	if a.DistrictID != 0 {
		if a.StateID == 0 {
			return domain.ValidationError{Reason: "district requires a state"}
		}
		var district models.District
		if err := tx.WithContext(ctx).Take(&district, a.DistrictID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ValidationError{Reason: fmt.Sprintf("district %d not found", a.DistrictID)}
			}
			return err
		}
		if district.StateID != a.StateID {
			return domain.ValidationError{Reason: "district does not belong to the given state"}
		}
	}
	if a.TalukaID != 0 {
		if a.DistrictID == 0 {
			return domain.ValidationError{Reason: "taluka requires a district"}
		}
		var taluka models.Taluka
		if err := tx.WithContext(ctx).Take(&taluka, a.TalukaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ValidationError{Reason: fmt.Sprintf("taluka %d not found", a.TalukaID)}
			}
			return err
		}
		if taluka.DistrictID != a.DistrictID || taluka.StateID != a.StateID {
			return domain.ValidationError{Reason: "taluka does not belong to the given district"}
		}
	}
	if a.CityID != 0 {
		if a.DistrictID == 0 {
			return domain.ValidationError{Reason: "city requires a district"}
		}
		var city models.City
		if err := tx.WithContext(ctx).Take(&city, a.CityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ValidationError{Reason: fmt.Sprintf("city %d not found", a.CityID)}
			}
			return err
		}
		if city.DistrictID != a.DistrictID || city.StateID != a.StateID {
			return domain.ValidationError{Reason: "city does not belong to the given district"}
		}
	}
	return nil
}
