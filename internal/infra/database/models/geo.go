package models

import (
	"time"
)

type State struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string    `json:"name" gorm:"type:text;not null;uniqueIndex:idx_state_name"`
	Code     string    `json:"code" gorm:"type:text;not null;uniqueIndex:idx_state_code"`
	IsActive bool      `json:"isActive" gorm:"not null;default:true"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type District struct {
	ID       uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string    `json:"name" gorm:"type:text;not null;uniqueIndex:idx_district_state_name"`
	StateID  uint      `json:"stateId" gorm:"not null;uniqueIndex:idx_district_state_name;index"`
	State    State     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	IsActive bool      `json:"isActive" gorm:"not null;default:true"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Taluka carries its state id redundantly so state-scoped listings skip a
// join. It must always equal the parent district's state id.
type Taluka struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:text;not null;uniqueIndex:idx_taluka_district_name"`
	DistrictID uint      `json:"districtId" gorm:"not null;uniqueIndex:idx_taluka_district_name;index"`
	District   District  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	StateID    uint      `json:"stateId" gorm:"not null;index"`
	State      State     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type City struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:text;not null;uniqueIndex:idx_city_district_name"`
	DistrictID uint      `json:"districtId" gorm:"not null;uniqueIndex:idx_city_district_name;index"`
	District   District  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	StateID    uint      `json:"stateId" gorm:"not null;index"`
	State      State     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
