package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Gig is a tailoring professional's service listing.
type Gig struct {
	Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	Title       string    `json:"title" binding:"required" conform:"trim"`
	ShortTitle  string    `json:"shorttitle" conform:"trim"`
	Description string    `json:"description" binding:"required"`
	ShortDesc   string    `json:"shortdesc"`
	Price       int       `json:"price" binding:"required,gt=0"`
	Category    string    `json:"category" binding:"required" conform:"trim"`
	Cover       string    `json:"cover"`
	Images      ImageList `gorm:"type:text" json:"images"`
}

// ImageList stores an image URL list as a JSON text column.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported image list type %T", value)
	}
}

type CreateGigRequest struct {
	Title       string   `json:"title" binding:"required" conform:"trim"`
	ShortTitle  string   `json:"shorttitle" conform:"trim"`
	Description string   `json:"description" binding:"required"`
	ShortDesc   string   `json:"shortdesc"`
	Price       int      `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required" conform:"trim"`
	Cover       string   `json:"cover"`
	Images      []string `json:"images"`
}

type GigFilter struct {
	City     string
	MinPrice int
	MaxPrice int
}
