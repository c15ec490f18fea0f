package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type OrderRepository interface {
	CreateOrder(order *models.Order) (*models.Order, error)
	FindOrderByID(id uint) (*models.Order, error)
	GetOrdersByClient(clientID uint) ([]models.Order, error)
	GetOrdersByProfessional(professionalID uint) ([]models.Order, error)
	UpdateOrder(order *models.Order) error
}

type orderRepo struct {
	DB *gorm.DB
}

func NewOrderRepo(db *GormDB) OrderRepository {
	return &orderRepo{db.DB}
}

func (o *orderRepo) CreateOrder(order *models.Order) (*models.Order, error) {
	if err := o.DB.Create(order).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create order")
	}
	return order, nil
}

func (o *orderRepo) FindOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := o.DB.Preload("Client").Preload("Professional").Preload("Gig").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "unable to fetch order")
	}
	return &order, nil
}

func (o *orderRepo) GetOrdersByClient(clientID uint) ([]models.Order, error) {
	var orders []models.Order
	err := o.DB.Preload("Professional").Preload("Gig").
		Where("client_id = ?", clientID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch client orders")
	}
	return orders, nil
}

func (o *orderRepo) GetOrdersByProfessional(professionalID uint) ([]models.Order, error) {
	var orders []models.Order
	err := o.DB.Preload("Client").Preload("Gig").
		Where("professional_id = ?", professionalID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch professional orders")
	}
	return orders, nil
}

func (o *orderRepo) UpdateOrder(order *models.Order) error {
	return o.DB.Save(order).Error
}
