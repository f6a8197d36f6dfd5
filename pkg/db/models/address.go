package models

// Address is the delivery destination referenced by Delivery rows.
type Address struct {
	ID      uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Street  *string `gorm:"column:street"`
	City    string  `gorm:"column:city;size:100;not null"`
	State   string  `gorm:"column:state;size:100;not null;index"`
	PinCode *string `gorm:"column:pin_code;size:10"`
}
