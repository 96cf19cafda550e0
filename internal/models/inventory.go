package models

// SuppAdd is a supply address, the top of the storage-location hierarchy.
type SuppAdd struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Code string `gorm:"uniqueIndex;not null" json:"code"`
	Desc string `json:"desc,omitempty"`

	SubInventorys []SubInventory `gorm:"foreignKey:SuppAddID" json:"subinventorys,omitempty"`
}

// TableName sets the table name.
func (SuppAdd) TableName() string {
	return "supp_adds"
}

// SubInventory is a storage area within one SuppAdd. Codes are unique only
// within the owning SuppAdd.
type SubInventory struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Code      string `gorm:"index:idx_subinventory_code,unique;not null" json:"code"`
	SuppAddID *uint  `gorm:"index:idx_subinventory_code,unique" json:"suppadd_id,omitempty"`

	Locators []Locator `gorm:"foreignKey:SubInventoryID" json:"locators,omitempty"`
}

// TableName sets the table name.
func (SubInventory) TableName() string {
	return "sub_inventorys"
}

// Locator is a bin position within one SubInventory. Codes are unique only
// within the owning SubInventory.
type Locator struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	Code           string `gorm:"index:idx_locator_code,unique;not null" json:"code"`
	SubInventoryID *uint  `gorm:"index:idx_locator_code,unique" json:"subinventory_id,omitempty"`
}

// TableName sets the table name.
func (Locator) TableName() string {
	return "locators"
}
