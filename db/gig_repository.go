package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type GigRepository interface {
	CreateGig(gig *models.Gig) (*models.Gig, error)
	FindGigByID(id uint) (*models.Gig, error)
	GetAllGigs() ([]models.Gig, error)
	GetGigsByUser(userID uint) ([]models.Gig, error)
	UpdateGig(gig *models.Gig) error
	DeleteGig(id uint) error
	FilterGigs(filter models.GigFilter) ([]models.Gig, error)
}

type gigRepo struct {
	DB *gorm.DB
}

func NewGigRepo(db *GormDB) GigRepository {
	return &gigRepo{db.DB}
}

func (g *gigRepo) CreateGig(gig *models.Gig) (*models.Gig, error) {
	if err := g.DB.Create(gig).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create gig")
	}
	return gig, nil
}

func (g *gigRepo) FindGigByID(id uint) (*models.Gig, error) {
	var gig models.Gig
	err := g.DB.Preload("User").Preload("User.Role").Where("id = ?", id).First(&gig).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch gig")
	}
	return &gig, nil
}

func (g *gigRepo) GetAllGigs() ([]models.Gig, error) {
	var gigs []models.Gig
	err := g.DB.Preload("User").Order("created_at DESC").Find(&gigs).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch gigs")
	}
	return gigs, nil
}

func (g *gigRepo) GetGigsByUser(userID uint) ([]models.Gig, error) {
	var gigs []models.Gig
	err := g.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&gigs).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch user gigs")
	}
	return gigs, nil
}

func (g *gigRepo) UpdateGig(gig *models.Gig) error {
	return g.DB.Save(gig).Error
}

func (g *gigRepo) DeleteGig(id uint) error {
	return g.DB.Delete(&models.Gig{}, id).Error
}

// FilterGigs pushes the city and price filters into a single joined query,
// the way the original search endpoint leaned on the database planner.
func (g *gigRepo) FilterGigs(filter models.GigFilter) ([]models.Gig, error) {
	query := g.DB.Preload("User").
		Joins("JOIN users ON users.id = gigs.user_id")

	if filter.City != "" {
		query = query.Where("users.address ILIKE ?", "%"+filter.City+"%")
	}
	if filter.MinPrice > 0 {
		query = query.Where("gigs.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("gigs.price <= ?", filter.MaxPrice)
	}

	var gigs []models.Gig
	if err := query.Order("gigs.created_at DESC").Find(&gigs).Error; err != nil {
		return nil, errors.Wrap(err, "unable to filter gigs")
	}
	return gigs, nil
}
