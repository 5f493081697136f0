package model

// Branch is a physical point of sale / warehouse. Stock is tracked per
// (product, branch) and every sale or transfer is anchored to one.
type Branch struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address  string `gorm:"type:varchar(255)" json:"address"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
