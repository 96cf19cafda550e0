package models

import "strings"

// Part is a catalog entry for a stock item. Parts have an independent
// lifecycle and are referenced by documents.
type Part struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	NSN               string `gorm:"column:nsn;uniqueIndex;not null;type:varchar(13)" json:"nsn"`
	Nomen             string `json:"nomen,omitempty"`
	UOI               string `gorm:"column:uoi;type:varchar(2)" json:"uoi,omitempty"`
	Price             Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	SAC               string `gorm:"column:sac" json:"sac,omitempty"`
	SerialControlFlag bool   `json:"serial_control_flag"`
	LotControlFlag    bool   `json:"lot_control_flag"`
	ShelfLifeCode     string `gorm:"type:varchar(2)" json:"shelf_life_code,omitempty"`
}

// TableName sets the table name.
func (Part) TableName() string {
	return "parts"
}

// NIIN returns the last nine digits of the NSN, the item identifier used in
// GCSS payloads.
func (p *Part) NIIN() string {
	if p == nil {
		return ""
	}
	nsn := strings.TrimSpace(p.NSN)
	if len(nsn) <= 4 {
		return nsn
	}
	return nsn[4:]
}

// ServiceRequest links a document to an external maintenance request.
type ServiceRequest struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	ServiceRequest string `gorm:"column:service_request;uniqueIndex;not null" json:"service_request"`
}

// TableName sets the table name.
func (ServiceRequest) TableName() string {
	return "service_requests"
}
