package samiti

import (
	"time"
)

// GeoKind identifies one level of the geographic reference hierarchy.
type GeoKind string

const (
	GeoKindState    GeoKind = "state"
	GeoKindDistrict GeoKind = "district"
	GeoKindTaluka   GeoKind = "taluka"
	GeoKindCity     GeoKind = "city"
)

// ParseGeoKind maps a path segment to a GeoKind. The bool is false for
// anything that is not one of the four levels.
func ParseGeoKind(s string) (GeoKind, bool) {
	switch GeoKind(s) {
	case GeoKindState, GeoKindDistrict, GeoKindTaluka, GeoKindCity:
		return GeoKind(s), true
	}
	return "", false
}

// GeoNode is the wire representation of any hierarchy node. StateID and
// DistrictID are zero for levels that have no such parent.
type GeoNode struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	StateID    uint   `json:"stateId,omitempty"`
	DistrictID uint   `json:"districtId,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// GeoNodeInput carries the caller-supplied fields for create/update.
type GeoNodeInput struct {
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	StateID    uint   `json:"stateId,omitempty"`
	DistrictID uint   `json:"districtId,omitempty"`
}

// GeoFilter narrows a list call to one parent scope. Nil means no filter.
type GeoFilter struct {
	StateID    *uint
	DistrictID *uint
}

const (
	AddressTypePermanent     = "permanent"
	AddressTypeCommunication = "communication"
)

// OtherDetail is one free-form detail/date pair on a registration detail.
// The slice order is the submission order and is preserved as stored.
type OtherDetail struct {
	Detail string `json:"detail"`
	Date   string `json:"date,omitempty"`
}

// RegistrationDetailInput carries the extended registration attributes of one
// member. Date fields are submitted as strings and normalized before storage.
type RegistrationDetailInput struct {
	OrganizationName            string        `json:"organizationName"`
	RegistrationType            string        `json:"registrationType"`
	RegistrationNumber          string        `json:"registrationNumber"`
	RegistrationDate            string        `json:"registrationDate,omitempty"`
	AlternateRegistrationNumber string        `json:"alternateRegistrationNumber,omitempty"`
	AlternateRegistrationDate   string        `json:"alternateRegistrationDate,omitempty"`
	PANNumber                   string        `json:"panNumber,omitempty"`
	GSTNumber                   string        `json:"gstNumber,omitempty"`
	OtherDetails                []OtherDetail `json:"otherDetails,omitempty"`
}

// AddressInput references hierarchy nodes by id; the chain is validated
// against the hierarchy inside the save transaction.
type AddressInput struct {
	Type       string `json:"type"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	StateID    uint   `json:"stateId,omitempty"`
	DistrictID uint   `json:"districtId,omitempty"`
	TalukaID   uint   `json:"talukaId,omitempty"`
	CityID     uint   `json:"cityId,omitempty"`
	Pincode    string `json:"pincode,omitempty"`
}

type PhoneInput struct {
	Number string `json:"number"`
	Kind   string `json:"kind,omitempty"` // mobile, landline, fax
}

type EmailInput struct {
	Address string `json:"address"`
	Kind    string `json:"kind,omitempty"`
}

type SocialLinkInput struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type KeyContactInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

type CertificationInput struct {
	Name       string `json:"name"`
	Number     string `json:"number,omitempty"`
	IssuedBy   string `json:"issuedBy,omitempty"`
	ValidUntil string `json:"validUntil,omitempty"`
}

// ProfilePayload is one submission for one member. Every section is
// optional; absent sections are left untouched.
type ProfilePayload struct {
	RegistrationDetail *RegistrationDetailInput `json:"registrationDetail,omitempty"`
	Addresses          []AddressInput           `json:"addresses,omitempty"`
	Phones             []PhoneInput             `json:"phones,omitempty"`
	Emails             []EmailInput             `json:"emails,omitempty"`
	SocialLinks        []SocialLinkInput        `json:"socialLinks,omitempty"`
	KeyContacts        []KeyContactInput        `json:"keyContacts,omitempty"`
	Certifications     []CertificationInput     `json:"certifications,omitempty"`
}

// Empty reports whether the payload carries no section at all.
func (p ProfilePayload) Empty() bool {
	return p.RegistrationDetail == nil &&
		len(p.Addresses) == 0 &&
		len(p.Phones) == 0 &&
		len(p.Emails) == 0 &&
		len(p.SocialLinks) == 0 &&
		len(p.KeyContacts) == 0 &&
		len(p.Certifications) == 0
}

// MemberView is the identity anchor as rendered in a profile view.
type MemberView struct {
	ID                   uint       `json:"id"`
	OrganizationName     string     `json:"organizationName"`
	OrganizationType     string     `json:"organizationType,omitempty"`
	ContactNumber        string     `json:"contactNumber,omitempty"`
	Email                string     `json:"email,omitempty"`
	Status               string     `json:"status"`
	MembershipExpiryDate *time.Time `json:"membershipExpiryDate,omitempty"`
	CDate                time.Time  `json:"cdate"`
}

type RegistrationDetailView struct {
	OrganizationName            string        `json:"organizationName,omitempty"`
	RegistrationType            string        `json:"registrationType,omitempty"`
	RegistrationNumber          string        `json:"registrationNumber,omitempty"`
	RegistrationDate            string        `json:"registrationDate,omitempty"`
	AlternateRegistrationNumber string        `json:"alternateRegistrationNumber,omitempty"`
	AlternateRegistrationDate   string        `json:"alternateRegistrationDate,omitempty"`
	PANNumber                   string        `json:"panNumber,omitempty"`
	GSTNumber                   string        `json:"gstNumber,omitempty"`
	OtherDetails                []OtherDetail `json:"otherDetails,omitempty"`
}

type AddressView struct {
	Type       string `json:"type"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	StateID    uint   `json:"stateId,omitempty"`
	DistrictID uint   `json:"districtId,omitempty"`
	TalukaID   uint   `json:"talukaId,omitempty"`
	CityID     uint   `json:"cityId,omitempty"`
	Pincode    string `json:"pincode,omitempty"`
}

type PhoneView struct {
	Number string `json:"number"`
	Kind   string `json:"kind,omitempty"`
}

type EmailView struct {
	Address string `json:"address"`
	Kind    string `json:"kind,omitempty"`
}

type SocialLinkView struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type KeyContactView struct {
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

type CertificationView struct {
	Name       string `json:"name"`
	Number     string `json:"number,omitempty"`
	IssuedBy   string `json:"issuedBy,omitempty"`
	ValidUntil string `json:"validUntil,omitempty"`
}

// ProfileView is the denormalized read model for one member. Absent
// sections render as zero values and empty lists, never as null.
type ProfileView struct {
	Member             MemberView             `json:"member"`
	RegistrationDetail RegistrationDetailView `json:"registrationDetail"`
	PermanentAddress   AddressView            `json:"permanentAddress"`
	Phones             []PhoneView            `json:"phones"`
	Emails             []EmailView            `json:"emails"`
	SocialLinks        []SocialLinkView       `json:"socialLinks"`
	KeyContacts        []KeyContactView       `json:"keyContacts"`
	Certifications     []CertificationView    `json:"certifications"`
}

// WizardDraft is the client-held resumable submission, persisted out of
// band from the committed profile.
type WizardDraft struct {
	ID        string         `json:"id"`
	MemberID  uint           `json:"memberId"`
	Step      int            `json:"step"`
	Payload   ProfilePayload `json:"payload"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Event is the realtime change-feed message published on profile commits.
type Event struct {
	Type      string    `json:"type"`
	MemberID  uint      `json:"memberId"`
	Timestamp time.Time `json:"timestamp"`
}

const EventProfileUpdated = "profile.updated"
