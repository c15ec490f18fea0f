package services

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

type SupplierService interface {
	CreateProfile(userID uint, role string, request *models.CreateSupplierRequest) (*models.SupplierProfile, *apiError.Error)
	GetProfile(id uint) (*models.SupplierProfile, *apiError.Error)
	GetAllProfiles() ([]models.SupplierProfile, *apiError.Error)
	GetUserProfiles(userID uint) ([]models.SupplierProfile, *apiError.Error)
	UpdateProfile(id, callerID uint, request *models.CreateSupplierRequest) (*models.SupplierProfile, *apiError.Error)
	DeleteProfile(id, callerID uint) *apiError.Error
	SearchProfiles(filter models.SupplierFilter) ([]models.SupplierProfile, *apiError.Error)
}

type supplierService struct {
	Config       *config.Config
	supplierRepo db.SupplierRepository
}

func NewSupplierService(supplierRepo db.SupplierRepository, conf *config.Config) SupplierService {
	return &supplierService{
		Config:       conf,
		supplierRepo: supplierRepo,
	}
}

// CreateProfile is gated on the supplier role.
func (s *supplierService) CreateProfile(userID uint, role string, request *models.CreateSupplierRequest) (*models.SupplierProfile, *apiError.Error) {
	if role != models.RoleSupplier {
		return nil, apiError.New("only suppliers can create shop profiles", http.StatusForbidden)
	}

	profile := &models.SupplierProfile{
		UserID:          userID,
		ShopName:        request.ShopName,
		ShopDescription: request.ShopDescription,
		MaterialOffered: request.MaterialOffered,
		ContactInfo:     request.ContactInfo,
		Cover:           request.Cover,
		Images:          models.ImageList(request.Images),
	}
	created, err := s.supplierRepo.CreateSupplierProfile(profile)
	if err != nil {
		log.Printf("CreateProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *supplierService) GetProfile(id uint) (*models.SupplierProfile, *apiError.Error) {
	profile, err := s.supplierRepo.FindSupplierProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("shop profile not found", http.StatusNotFound)
		}
		log.Printf("GetProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *supplierService) GetAllProfiles() ([]models.SupplierProfile, *apiError.Error) {
	profiles, err := s.supplierRepo.GetAllSupplierProfiles()
	if err != nil {
		log.Printf("GetAllProfiles error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profiles, nil
}

func (s *supplierService) GetUserProfiles(userID uint) ([]models.SupplierProfile, *apiError.Error) {
	profiles, err := s.supplierRepo.GetSupplierProfilesByUser(userID)
	if err != nil {
		log.Printf("GetUserProfiles error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profiles, nil
}

func (s *supplierService) UpdateProfile(id, callerID uint, request *models.CreateSupplierRequest) (*models.SupplierProfile, *apiError.Error) {
	profile, apiErr := s.ownedProfile(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}

	profile.ShopName = request.ShopName
	profile.ShopDescription = request.ShopDescription
	profile.MaterialOffered = request.MaterialOffered
	profile.ContactInfo = request.ContactInfo
	if request.Cover != "" {
		profile.Cover = request.Cover
	}
	if len(request.Images) > 0 {
		profile.Images = models.ImageList(request.Images)
	}

	if err := s.supplierRepo.UpdateSupplierProfile(profile); err != nil {
		log.Printf("UpdateProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *supplierService) DeleteProfile(id, callerID uint) *apiError.Error {
	if _, apiErr := s.ownedProfile(id, callerID); apiErr != nil {
		return apiErr
	}
	if err := s.supplierRepo.DeleteSupplierProfile(id); err != nil {
		log.Printf("DeleteProfile error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *supplierService) SearchProfiles(filter models.SupplierFilter) ([]models.SupplierProfile, *apiError.Error) {
	profiles, err := s.supplierRepo.FilterSupplierProfiles(filter)
	if err != nil {
		log.Printf("SearchProfiles error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profiles, nil
}

func (s *supplierService) ownedProfile(id, callerID uint) (*models.SupplierProfile, *apiError.Error) {
	profile, err := s.supplierRepo.FindSupplierProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("shop profile not found", http.StatusNotFound)
		}
		log.Printf("supplier profile lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if profile.UserID != callerID {
		return nil, apiError.New("you do not own this shop profile", http.StatusForbidden)
	}
	return profile, nil
}
