package models

// Customer is a dimension record keyed by the upstream system's external id.
type Customer struct {
	ID    string `gorm:"column:id;size:15;primaryKey"`
	Name  string `gorm:"column:name;size:255;not null"`
	Email string `gorm:"column:email;size:254;not null"`
	Phone string `gorm:"column:phone;size:15;not null"`
}
