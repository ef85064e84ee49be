package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opensamaj/samiti"
	"github.com/opensamaj/samiti/internal/domain"
	"github.com/opensamaj/samiti/internal/infra/database/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Save persists one submission for one member as a single transaction:
// either every section lands or none does. The member row must already
// exist; the coordinator never creates members.
func (r *ProfileRepository) Save(ctx context.Context, memberID uint, p samiti.ProfilePayload) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var member models.Member
		if err := tx.Take(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.MemberNotFoundError{ID: memberID}
			}
			return err
		}

		if p.RegistrationDetail != nil {
			in := p.RegistrationDetail
			row := models.RegistrationDetail{
				MemberID:                    memberID,
				OrganizationName:            in.OrganizationName,
				RegistrationType:            in.RegistrationType,
				RegistrationNumber:          in.RegistrationNumber,
				RegistrationDate:            samiti.NormalizeDate(in.RegistrationDate),
				AlternateRegistrationNumber: in.AlternateRegistrationNumber,
				AlternateRegistrationDate:   samiti.NormalizeDate(in.AlternateRegistrationDate),
				PANNumber:                   in.PANNumber,
				GSTNumber:                   in.GSTNumber,
				OtherDetails:                in.OtherDetails,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"organization_name",
					"registration_type",
					"registration_number",
					"registration_date",
					"alternate_registration_number",
					"alternate_registration_date",
					"pan_number",
					"gst_number",
					"other_details",
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, a := range p.Addresses {
			if err := validateGeoChain(ctx, tx, a); err != nil {
				return err
			}
			row := models.Address{
				MemberID:   memberID,
				Type:       a.Type,
				Line1:      a.Line1,
				Line2:      a.Line2,
				StateID:    a.StateID,
				DistrictID: a.DistrictID,
				TalukaID:   a.TalukaID,
				CityID:     a.CityID,
				Pincode:    a.Pincode,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "member_id"}, {Name: "type"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"line1", "line2", "state_id", "district_id", "taluka_id", "city_id", "pincode",
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		// The five sections below upsert on member_id alone, so submitting
		// several entries in one call keeps only the last one processed.
		// Other components depend on the one-row-per-member shape; do not
		// strengthen the key here without migrating them.

		for _, ph := range p.Phones {
			row := models.Phone{MemberID: memberID, Number: ph.Number, Kind: ph.Kind}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"number", "kind"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, em := range p.Emails {
			row := models.Email{MemberID: memberID, Address: em.Address, Kind: em.Kind}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"address", "kind"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, sl := range p.SocialLinks {
			row := models.SocialLink{MemberID: memberID, Platform: sl.Platform, URL: sl.URL}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"platform", "url"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, kc := range p.KeyContacts {
			row := models.KeyContact{
				MemberID:    memberID,
				Name:        kc.Name,
				Designation: kc.Designation,
				Phone:       kc.Phone,
				Email:       kc.Email,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "designation", "phone", "email"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, ce := range p.Certifications {
			row := models.Certification{
				MemberID:   memberID,
				Name:       ce.Name,
				Number:     ce.Number,
				IssuedBy:   ce.IssuedBy,
				ValidUntil: samiti.NormalizeDate(ce.ValidUntil),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "number", "issued_by", "valid_until"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Get assembles the denormalized view for one member. Sections the member
// never submitted come back as zero values and empty lists.
func (r *ProfileRepository) Get(ctx context.Context, memberID uint) (samiti.ProfileView, error) {
	var member models.Member
	err := r.preloaded(ctx).Take(&member, memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return samiti.ProfileView{}, domain.NotFoundError{Resource: "member"}
		}
		return samiti.ProfileView{}, err
	}
	return buildProfileView(member), nil
}

// ListAll returns every member's view ordered by the given column. The
// column is whitelisted by the caller; ties break by id ascending.
func (r *ProfileRepository) ListAll(ctx context.Context, column string, desc bool) ([]samiti.ProfileView, error) {
	var members []models.Member
	err := r.preloaded(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order("id asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	views := make([]samiti.ProfileView, 0, len(members))
	for _, m := range members {
		views = append(views, buildProfileView(m))
	}
	return views, nil
}

func (r *ProfileRepository) preloaded(ctx context.Context) *gorm.DB {
	ordered := func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }
	return r.db.WithContext(ctx).
		Preload("RegistrationDetail").
		Preload("Addresses", ordered).
		Preload("Phones", ordered).
		Preload("Emails", ordered).
		Preload("SocialLinks", ordered).
		Preload("KeyContacts", ordered).
		Preload("Certifications", ordered)
}

func buildProfileView(m models.Member) samiti.ProfileView {
	view := samiti.ProfileView{
		Member: samiti.MemberView{
			ID:                   m.ID,
			OrganizationName:     m.OrganizationName,
			OrganizationType:     m.OrganizationType,
			ContactNumber:        m.ContactNumber,
			Email:                m.Email,
			Status:               m.Status,
			MembershipExpiryDate: m.MembershipExpiryDate,
			CDate:                m.CDate,
		},
		Phones:         []samiti.PhoneView{},
		Emails:         []samiti.EmailView{},
		SocialLinks:    []samiti.SocialLinkView{},
		KeyContacts:    []samiti.KeyContactView{},
		Certifications: []samiti.CertificationView{},
	}

	if m.RegistrationDetail != nil {
		rd := m.RegistrationDetail
		view.RegistrationDetail = samiti.RegistrationDetailView{
			OrganizationName:            rd.OrganizationName,
			RegistrationType:            rd.RegistrationType,
			RegistrationNumber:          rd.RegistrationNumber,
			RegistrationDate:            samiti.FormatDate(rd.RegistrationDate),
			AlternateRegistrationNumber: rd.AlternateRegistrationNumber,
			AlternateRegistrationDate:   samiti.FormatDate(rd.AlternateRegistrationDate),
			PANNumber:                   rd.PANNumber,
			GSTNumber:                   rd.GSTNumber,
			OtherDetails:                rd.OtherDetails,
		}
	}

	for _, a := range m.Addresses {
		if a.Type != samiti.AddressTypePermanent {
			continue
		}
		view.PermanentAddress = samiti.AddressView{
			Type:       a.Type,
			Line1:      a.Line1,
			Line2:      a.Line2,
			StateID:    a.StateID,
			DistrictID: a.DistrictID,
			TalukaID:   a.TalukaID,
			CityID:     a.CityID,
			Pincode:    a.Pincode,
		}
	}

	for _, ph := range m.Phones {
		view.Phones = append(view.Phones, samiti.PhoneView{Number: ph.Number, Kind: ph.Kind})
	}
	for _, em := range m.Emails {
		view.Emails = append(view.Emails, samiti.EmailView{Address: em.Address, Kind: em.Kind})
	}
	for _, sl := range m.SocialLinks {
		view.SocialLinks = append(view.SocialLinks, samiti.SocialLinkView{Platform: sl.Platform, URL: sl.URL})
	}
	for _, kc := range m.KeyContacts {
		view.KeyContacts = append(view.KeyContacts, samiti.KeyContactView{
			Name:        kc.Name,
			Designation: kc.Designation,
			Phone:       kc.Phone,
			Email:       kc.Email,
		})
	}
	for _, ce := range m.Certifications {
		view.Certifications = append(view.Certifications, samiti.CertificationView{
			Name:       ce.Name,
			Number:     ce.Number,
			IssuedBy:   ce.IssuedBy,
			ValidUntil: samiti.FormatDate(ce.ValidUntil),
		})
	}

	return view
}
