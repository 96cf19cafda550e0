package models

// AddressType classifies the role an address plays on a document.
type AddressType struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Type string `gorm:"uniqueIndex;not null" json:"type"`
}

// TableName sets the table name.
func (AddressType) TableName() string {
	return "address_types"
}

// Address is a postal/routing entity referenced by documents in the ship-to
// and holder roles.
type Address struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	AddressTypeID *uint  `gorm:"index" json:"address_type_id,omitempty"`
	Name          string `json:"name,omitempty"`
	RIC           string `gorm:"column:ric;type:varchar(3)" json:"ric,omitempty"`
	AddressLine1  string `json:"address_1,omitempty"`
	AddressLine2  string `json:"address_2,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `gorm:"type:varchar(2)" json:"state,omitempty"`
	Zip           string `gorm:"type:varchar(10)" json:"zip,omitempty"`
	Country       string `gorm:"type:varchar(2)" json:"country,omitempty"`

	AddressType *AddressType `gorm:"foreignKey:AddressTypeID;constraint:OnDelete:SET NULL" json:"address_type,omitempty"`
}

// TableName sets the table name.
func (Address) TableName() string {
	return "addresses"
}
