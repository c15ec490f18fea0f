package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type SupplierRepository interface {
	CreateSupplierProfile(profile *models.SupplierProfile) (*models.SupplierProfile, error)
	FindSupplierProfileByID(id uint) (*models.SupplierProfile, error)
	GetAllSupplierProfiles() ([]models.SupplierProfile, error)
	GetSupplierProfilesByUser(userID uint) ([]models.SupplierProfile, error)
	UpdateSupplierProfile(profile *models.SupplierProfile) error
	DeleteSupplierProfile(id uint) error
	FilterSupplierProfiles(filter models.SupplierFilter) ([]models.SupplierProfile, error)
}

type supplierRepo struct {
	DB *gorm.DB
}

func NewSupplierRepo(db *GormDB) SupplierRepository {
	return &supplierRepo{db.DB}
}

func (s *supplierRepo) CreateSupplierProfile(profile *models.SupplierProfile) (*models.SupplierProfile, error) {
	if err := s.DB.Create(profile).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create supplier profile")
	}
	return profile, nil
}

func (s *supplierRepo) FindSupplierProfileByID(id uint) (*models.SupplierProfile, error) {
	var profile models.SupplierProfile
	err := s.DB.Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch supplier profile")
	}
	return &profile, nil
}

func (s *supplierRepo) GetAllSupplierProfiles() ([]models.SupplierProfile, error) {
	var profiles []models.SupplierProfile
	err := s.DB.Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch supplier profiles")
	}
	return profiles, nil
}

func (s *supplierRepo) GetSupplierProfilesByUser(userID uint) ([]models.SupplierProfile, error) {
	var profiles []models.SupplierProfile
	err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch user supplier profiles")
	}
	return profiles, nil
}

func (s *supplierRepo) UpdateSupplierProfile(profile *models.SupplierProfile) error {
	return s.DB.Save(profile).Error
}

func (s *supplierRepo) DeleteSupplierProfile(id uint) error {
	return s.DB.Delete(&models.SupplierProfile{}, id).Error
}

func (s *supplierRepo) FilterSupplierProfiles(filter models.SupplierFilter) ([]models.SupplierProfile, error) {
	query := s.DB.Preload("User").
		Joins("JOIN users ON users.id = supplier_profiles.user_id")

	if filter.City != "" {
		query = query.Where("users.address ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Material != "" {
		query = query.Where("supplier_profiles.material_offered ILIKE ?", "%"+filter.Material+"%")
	}

	var profiles []models.SupplierProfile
	if err := query.Order("supplier_profiles.created_at DESC").Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "unable to filter supplier profiles")
	}
	return profiles, nil
}
