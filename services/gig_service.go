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

type GigService interface {
	CreateGig(userID uint, request *models.CreateGigRequest) (*models.Gig, *apiError.Error)
	GetGig(id uint) (*models.Gig, *apiError.Error)
	GetAllGigs() ([]models.Gig, *apiError.Error)
	GetUserGigs(userID uint) ([]models.Gig, *apiError.Error)
	UpdateGig(id, callerID uint, request *models.CreateGigRequest) (*models.Gig, *apiError.Error)
	DeleteGig(id, callerID uint) *apiError.Error
	SearchGigs(filter models.GigFilter) ([]models.Gig, *apiError.Error)
}

type gigService struct {
	Config  *config.Config
	gigRepo db.GigRepository
}

func NewGigService(gigRepo db.GigRepository, conf *config.Config) GigService {
	return &gigService{
		Config:  conf,
		gigRepo: gigRepo,
	}
}

func (s *gigService) CreateGig(userID uint, request *models.CreateGigRequest) (*models.Gig, *apiError.Error) {
	gig := &models.Gig{
		UserID:      userID,
		Title:       request.Title,
		ShortTitle:  request.ShortTitle,
		Description: request.Description,
		ShortDesc:   request.ShortDesc,
		Price:       request.Price,
		Category:    request.Category,
		Cover:       request.Cover,
		Images:      models.ImageList(request.Images),
	}
	created, err := s.gigRepo.CreateGig(gig)
	if err != nil {
		log.Printf("CreateGig error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *gigService) GetGig(id uint) (*models.Gig, *apiError.Error) {
	gig, err := s.gigRepo.FindGigByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("gig not found", http.StatusNotFound)
		}
		log.Printf("GetGig error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return gig, nil
}

func (s *gigService) GetAllGigs() ([]models.Gig, *apiError.Error) {
	gigs, err := s.gigRepo.GetAllGigs()
	if err != nil {
		log.Printf("GetAllGigs error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return gigs, nil
}

func (s *gigService) GetUserGigs(userID uint) ([]models.Gig, *apiError.Error) {
	gigs, err := s.gigRepo.GetGigsByUser(userID)
	if err != nil {
		log.Printf("GetUserGigs error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return gigs, nil
}

func (s *gigService) UpdateGig(id, callerID uint, request *models.CreateGigRequest) (*models.Gig, *apiError.Error) {
	gig, apiErr := s.ownedGig(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}

	gig.Title = request.Title
	gig.ShortTitle = request.ShortTitle
	gig.Description = request.Description
	gig.ShortDesc = request.ShortDesc
	gig.Price = request.Price
	gig.Category = request.Category
	if request.Cover != "" {
		gig.Cover = request.Cover
	}
	if len(request.Images) > 0 {
		gig.Images = models.ImageList(request.Images)
	}

	if err := s.gigRepo.UpdateGig(gig); err != nil {
		log.Printf("UpdateGig error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return gig, nil
}

func (s *gigService) DeleteGig(id, callerID uint) *apiError.Error {
	if _, apiErr := s.ownedGig(id, callerID); apiErr != nil {
		return apiErr
	}
	if err := s.gigRepo.DeleteGig(id); err != nil {
		log.Printf("DeleteGig error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *gigService) SearchGigs(filter models.GigFilter) ([]models.Gig, *apiError.Error) {
	gigs, err := s.gigRepo.FilterGigs(filter)
	if err != nil {
		log.Printf("SearchGigs error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return gigs, nil
}

func (s *gigService) ownedGig(id, callerID uint) (*models.Gig, *apiError.Error) {
	gig, err := s.gigRepo.FindGigByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("gig not found", http.StatusNotFound)
		}
		log.Printf("gig lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if gig.UserID != callerID {
		return nil, apiError.New("you do not own this gig", http.StatusForbidden)
	}
	return gig, nil
}
