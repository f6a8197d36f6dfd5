package models

// Product is a dimension record keyed by the upstream catalog's external id.
type Product struct {
	ID       string `gorm:"column:id;size:15;primaryKey"`
	Name     string `gorm:"column:name;size:255;not null"`
	Category string `gorm:"column:category;size:100;not null;index"`
}
