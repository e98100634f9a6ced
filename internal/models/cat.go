package models

import "time"

// Cat is a single catalogue entry, either imported from the upstream API or
// created by a client.
type Cat struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ImageURL    string `gorm:"type:text" json:"image_url"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Origin      string `gorm:"type:varchar(255)" json:"origin"`
	LifeSpan    string `gorm:"type:varchar(64)" json:"life_span"`
	Breed       string `gorm:"type:varchar(255);index" json:"breed"`
	Favorite    bool   `gorm:"not null;default:false" json:"favorite"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName pins the table name regardless of naming strategy.
func (Cat) TableName() string {
	return "cats"
}

// ToMap returns the flat key/value representation of the record, containing
// exactly the public attributes.
func (c *Cat) ToMap() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"image_url":   c.ImageURL,
		"name":        c.Name,
		"description": c.Description,
		"origin":      c.Origin,
		"life_span":   c.LifeSpan,
		"breed":       c.Breed,
		"favorite":    c.Favorite,
	}
}
