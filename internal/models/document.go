package models

import (
	"time"
)

// Document is a shipment record identified by its SDN. Documents are created
// on intake (manual entry or GCSS doc-history pull), never deleted, and
// mutated only by appending Status records.
type Document struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	SDN              string    `gorm:"column:sdn;uniqueIndex;not null" json:"sdn"`
	AAC              string    `gorm:"column:aac;index" json:"aac,omitempty"` // activity address code, becomes iPAAC on GCSS submission
	SuppAddID        *uint     `gorm:"index" json:"suppadd_id,omitempty"`
	PartID           *uint     `gorm:"index" json:"part_id,omitempty"`
	ServiceRequestID *uint     `gorm:"index" json:"service_request_id,omitempty"`
	ShipToID         *uint     `gorm:"index" json:"ship_to_id,omitempty"`
	HolderID         *uint     `gorm:"index" json:"holder_id,omitempty"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Associations. Parent deletion nulls the child reference, never cascades.
	SuppAdd        *SuppAdd        `gorm:"foreignKey:SuppAddID;constraint:OnDelete:SET NULL" json:"suppadd,omitempty"`
	Part           *Part           `gorm:"foreignKey:PartID;constraint:OnDelete:SET NULL" json:"part,omitempty"`
	ServiceRequest *ServiceRequest `gorm:"foreignKey:ServiceRequestID;constraint:OnDelete:SET NULL" json:"service_request,omitempty"`
	ShipTo         *Address        `gorm:"foreignKey:ShipToID;constraint:OnDelete:SET NULL" json:"ship_to,omitempty"`
	Holder         *Address        `gorm:"foreignKey:HolderID;constraint:OnDelete:SET NULL" json:"holder,omitempty"`
	Statuses       []Status        `gorm:"foreignKey:DocumentID" json:"statuses,omitempty"` // ordered by creation
}

// TableName sets the table name.
func (Document) TableName() string {
	return "documents"
}

// StatusByDic returns the first status carrying the given DIC code, or nil.
func (d *Document) StatusByDic(dic string) *Status {
	if d == nil {
		return nil
	}
	for i := range d.Statuses {
		if d.Statuses[i].DIC == dic {
			return &d.Statuses[i]
		}
	}
	return nil
}
