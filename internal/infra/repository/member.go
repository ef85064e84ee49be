package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/infra/database/models"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Register creates the identity anchor row and returns the generated id.
func (r *MemberRepository) Register(ctx context.Context, input domain.RegisterMemberInput) (uint, error) {
	row := models.Member{
		OrganizationName: input.OrganizationName,
		OrganizationType: input.OrganizationType,
		ContactNumber:    input.ContactNumber,
		Email:            input.Email,
		Status:           domain.StatusPending,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *MemberRepository) SetStatus(ctx context.Context, memberID uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", memberID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.MemberNotFoundError{ID: memberID}
	}
	return nil
}

// SweepExpired deactivates active members whose membership has lapsed and
// returns the ids it touched, so the caller can invalidate their views.
func (r *MemberRepository) SweepExpired(ctx context.Context, now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Member{}).
			Where("status = ?", domain.StatusActive).
			Where("membership_expiry_date IS NOT NULL").
			Where("membership_expiry_date < ?", now).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Member{}).
			Where("id IN ?", ids).
			Update("status", domain.StatusInactive).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
