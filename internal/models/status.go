package models

import (
	"time"
)

// Status is a point-in-time milestone for a Document. Rows are created only
// through the transition engine or GCSS intake and are immutable afterwards.
// The canonical workflow path allows at most one row per (document, dic).
type Status struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	DocumentID         uint      `gorm:"index;not null" json:"document_id"`
	DIC                string    `gorm:"column:dic;index;not null" json:"dic"`
	StatusDate         time.Time `json:"status_date"`
	KeyAndTransmitDate time.Time `json:"key_and_transmit_date"`
	ProjectedQty       *int      `json:"projected_qty,omitempty"`
	ReceivedQty        *int      `json:"received_qty,omitempty"`
	ReceivedBy         string    `json:"received_by,omitempty"`
	SubInventoryID     *uint     `gorm:"index" json:"subinventory_id,omitempty"`
	LocatorID          *uint     `gorm:"index" json:"locator_id,omitempty"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`

	SubInventory *SubInventory `gorm:"foreignKey:SubInventoryID;constraint:OnDelete:SET NULL" json:"subinventory,omitempty"`
	Locator      *Locator      `gorm:"foreignKey:LocatorID;constraint:OnDelete:SET NULL" json:"locator,omitempty"`
}

// TableName sets the table name.
func (Status) TableName() string {
	return "statuses"
}

// Dic is the catalog of document identifier codes.
type Dic struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Code        string `gorm:"uniqueIndex;not null;type:varchar(3)" json:"code"`
	Description string `json:"description"`
}

// TableName sets the table name.
func (Dic) TableName() string {
	return "dics"
}
