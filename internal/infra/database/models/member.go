package models

import (
	"time"

	"github.com/opensamaj/samiti"
)

type Member struct {
	ID                   uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationName     string     `json:"organizationName" gorm:"type:text;not null"`
	OrganizationType     string     `json:"organizationType" gorm:"type:text"`
	ContactNumber        string     `json:"contactNumber" gorm:"type:text"`
	Email                string     `json:"email" gorm:"type:text"`
	Status               string     `json:"status" gorm:"type:text;not null;default:'pending';index"`
	MembershipExpiryDate *time.Time `json:"membershipExpiryDate" gorm:"type:date"`
	CDate                time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`

	RegistrationDetail *RegistrationDetail `json:"registrationDetail,omitempty"`
	Addresses          []Address           `json:"addresses,omitempty"`
	Phones             []Phone             `json:"phones,omitempty"`
	Emails             []Email             `json:"emails,omitempty"`
	SocialLinks        []SocialLink        `json:"socialLinks,omitempty"`
	KeyContacts        []KeyContact        `json:"keyContacts,omitempty"`
	Certifications     []Certification     `json:"certifications,omitempty"`
}

// RegistrationDetail is at most one row per member; every save replaces all
// scalar fields. OtherDetails is an embedded ordered list kept as jsonb.
type RegistrationDetail struct {
	ID                          uint                 `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID                    uint                 `json:"memberId" gorm:"not null;uniqueIndex:idx_registration_member"`
	OrganizationName            string               `json:"organizationName" gorm:"type:text"`
	RegistrationType            string               `json:"registrationType" gorm:"type:text"`
	RegistrationNumber          string               `json:"registrationNumber" gorm:"type:text"`
	RegistrationDate            *time.Time           `json:"registrationDate" gorm:"type:date"`
	AlternateRegistrationNumber string               `json:"alternateRegistrationNumber" gorm:"type:text"`
	AlternateRegistrationDate   *time.Time           `json:"alternateRegistrationDate" gorm:"type:date"`
	PANNumber                   string               `json:"panNumber" gorm:"type:text"`
	GSTNumber                   string               `json:"gstNumber" gorm:"type:text"`
	OtherDetails                []samiti.OtherDetail `json:"otherDetails" gorm:"serializer:json;type:jsonb"`
}

// Address is unique on (member, type). The geo columns are plain ids on
// purpose: a hard-deleted state may leave them dangling, a soft-deleted
// taluka or city keeps resolving.
type Address struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID   uint   `json:"memberId" gorm:"not null;uniqueIndex:idx_address_member_type"`
	Type       string `json:"type" gorm:"type:text;not null;uniqueIndex:idx_address_member_type"`
	Line1      string `json:"line1" gorm:"type:text"`
	Line2      string `json:"line2" gorm:"type:text"`
	StateID    uint   `json:"stateId" gorm:"index"`
	DistrictID uint   `json:"districtId" gorm:"index"`
	TalukaID   uint   `json:"talukaId"`
	CityID     uint   `json:"cityId"`
	Pincode    string `json:"pincode" gorm:"type:text"`
}

// The five sections below are lists in shape but unique on member_id alone,
// so one save keeps only the last entry it processed. Reproduced as
// documented behavior; see the profile repository.

type Phone struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID uint   `json:"memberId" gorm:"not null;uniqueIndex:idx_phone_member"`
	Number   string `json:"number" gorm:"type:text;not null"`
	Kind     string `json:"kind" gorm:"type:text"`
}

type Email struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID uint   `json:"memberId" gorm:"not null;uniqueIndex:idx_email_member"`
	Address  string `json:"address" gorm:"type:text;not null"`
	Kind     string `json:"kind" gorm:"type:text"`
}

type SocialLink struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID uint   `json:"memberId" gorm:"not null;uniqueIndex:idx_social_link_member"`
	Platform string `json:"platform" gorm:"type:text"`
	URL      string `json:"url" gorm:"type:text"`
}

type KeyContact struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID    uint   `json:"memberId" gorm:"not null;uniqueIndex:idx_key_contact_member"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Designation string `json:"designation" gorm:"type:text"`
	Phone       string `json:"phone" gorm:"type:text"`
	Email       string `json:"email" gorm:"type:text"`
}

type Certification struct {
	ID         uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID   uint       `json:"memberId" gorm:"not null;uniqueIndex:idx_certification_member"`
	Name       string     `json:"name" gorm:"type:text;not null"`
	Number     string     `json:"number" gorm:"type:text"`
	IssuedBy   string     `json:"issuedBy" gorm:"type:text"`
	ValidUntil *time.Time `json:"validUntil" gorm:"type:date"`
}
