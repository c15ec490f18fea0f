package models

import "github.com/google/uuid"

const (
	RoleCustomer     = "customer"
	RoleProfessional = "professional"
	RoleSupplier     = "supplier"
	RoleAdmin        = "admin"
)

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"unique;not null" json:"name"`
}

// IsValidRole reports whether name belongs to the closed role set.
func IsValidRole(name string) bool {
	switch name {
	case RoleCustomer, RoleProfessional, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}
