package models

// Platform is the sales channel an order was placed on (marketplace, web
// store, and so on).
type Platform struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string  `gorm:"column:name;size:100;not null;uniqueIndex"`
	Description *string `gorm:"column:description"`
}
