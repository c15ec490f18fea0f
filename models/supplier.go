package models

// SupplierProfile is a fabric supplier's shop listing.
type SupplierProfile struct {
	Model
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"user"`
	ShopName        string    `json:"shop_name" binding:"required" conform:"trim"`
	ShopDescription string    `json:"shop_description"`
	MaterialOffered string    `json:"material_offered" conform:"trim"`
	Rating          float64   `json:"rating" gorm:"default:0"`
	ContactInfo     string    `json:"contact_info"`
	Cover           string    `json:"cover"`
	Images          ImageList `gorm:"type:text" json:"images"`
}

type CreateSupplierRequest struct {
	ShopName        string   `json:"shop_name" binding:"required" conform:"trim"`
	ShopDescription string   `json:"shop_description"`
	MaterialOffered string   `json:"material_offered" conform:"trim"`
	ContactInfo     string   `json:"contact_info"`
	Cover           string   `json:"cover"`
	Images          []string `json:"images"`
}

type SupplierFilter struct {
	City     string
	Material string
}
