package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

type OrderService interface {
	CreateOrder(clientID uint, request *models.CreateOrderRequest) (*models.Order, *apiError.Error)
	GetOrder(id, callerID uint) (*models.Order, *apiError.Error)
	GetClientOrders(clientID uint) ([]models.Order, *apiError.Error)
	GetProfessionalOrders(professionalID uint) ([]models.Order, *apiError.Error)
	UpdateOrderStatus(id, callerID uint, status string) (*models.Order, *apiError.Error)
	CancelOrder(id, callerID uint) (*models.Order, *apiError.Error)
	AddFeedback(id, callerID uint, feedback string) (*models.Order, *apiError.Error)
	ReviewOrder(id, callerID uint, request *models.OrderReviewRequest) (*models.Order, *apiError.Error)
}

type orderService struct {
	Config    *config.Config
	orderRepo db.OrderRepository
	gigRepo   db.GigRepository
}

func NewOrderService(orderRepo db.OrderRepository, gigRepo db.GigRepository, conf *config.Config) OrderService {
	return &orderService{
		Config:    conf,
		orderRepo: orderRepo,
		gigRepo:   gigRepo,
	}
}

// CreateOrder places an order against a gig; the professional is the gig owner.
func (o *orderService) CreateOrder(clientID uint, request *models.CreateOrderRequest) (*models.Order, *apiError.Error) {
	gig, err := o.gigRepo.FindGigByID(request.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("gig not found", http.StatusNotFound)
		}
		log.Printf("CreateOrder gig lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if gig.UserID == clientID {
		return nil, apiError.New("you cannot order your own gig", http.StatusBadRequest)
	}

	order := &models.Order{
		ClientID:       clientID,
		ProfessionalID: gig.UserID,
		GigID:          gig.ID,
		ServiceName:    request.ServiceName,
		JobDescription: request.JobDescription,
		Budget:         request.Budget,
		Deadline:       request.Deadline,
		Requirements:   request.Requirements,
		PaymentProof:   request.PaymentProof,
		Status:         models.OrderStatusPending,
	}
	created, err := o.orderRepo.CreateOrder(order)
	if err != nil {
		log.Printf("CreateOrder error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (o *orderService) GetOrder(id, callerID uint) (*models.Order, *apiError.Error) {
	return o.participantOrder(id, callerID)
}

func (o *orderService) GetClientOrders(clientID uint) ([]models.Order, *apiError.Error) {
	orders, err := o.orderRepo.GetOrdersByClient(clientID)
	if err != nil {
		log.Printf("GetClientOrders error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return orders, nil
}

func (o *orderService) GetProfessionalOrders(professionalID uint) ([]models.Order, *apiError.Error) {
	orders, err := o.orderRepo.GetOrdersByProfessional(professionalID)
	if err != nil {
		log.Printf("GetProfessionalOrders error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return orders, nil
}

// UpdateOrderStatus lets the professional move an order through its lifecycle.
func (o *orderService) UpdateOrderStatus(id, callerID uint, status string) (*models.Order, *apiError.Error) {
	if !isValidOrderStatus(status) {
		return nil, apiError.New("invalid order status", http.StatusBadRequest)
	}
	order, apiErr := o.participantOrder(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if order.ProfessionalID != callerID {
		return nil, apiError.New("only the professional can update the order status", http.StatusForbidden)
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, apiError.New("cancelled orders cannot be updated", http.StatusBadRequest)
	}

	order.Status = status
	if err := o.orderRepo.UpdateOrder(order); err != nil {
		log.Printf("UpdateOrderStatus error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return order, nil
}

// CancelOrder lets the client back out while the order is still pending.
func (o *orderService) CancelOrder(id, callerID uint) (*models.Order, *apiError.Error) {
	order, apiErr := o.participantOrder(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if order.ClientID != callerID {
		return nil, apiError.New("only the client can cancel an order", http.StatusForbidden)
	}
	if order.Status != models.OrderStatusPending {
		return nil, apiError.New("only pending orders can be cancelled", http.StatusBadRequest)
	}

	order.Status = models.OrderStatusCancelled
	if err := o.orderRepo.UpdateOrder(order); err != nil {
		log.Printf("CancelOrder error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return order, nil
}

// AddFeedback records the client's free-form feedback on the finished work.
func (o *orderService) AddFeedback(id, callerID uint, feedback string) (*models.Order, *apiError.Error) {
	order, apiErr := o.participantOrder(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if order.ClientID != callerID {
		return nil, apiError.New("only the client can leave feedback", http.StatusForbidden)
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, apiError.New("only completed orders can receive feedback", http.StatusBadRequest)
	}

	order.Feedback = feedback
	if err := o.orderRepo.UpdateOrder(order); err != nil {
		log.Printf("AddFeedback error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return order, nil
}

// ReviewOrder records the client's rating once the work is completed.
func (o *orderService) ReviewOrder(id, callerID uint, request *models.OrderReviewRequest) (*models.Order, *apiError.Error) {
	order, apiErr := o.participantOrder(id, callerID)
	if apiErr != nil {
		return nil, apiErr
	}
	if order.ClientID != callerID {
		return nil, apiError.New("only the client can review an order", http.StatusForbidden)
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, apiError.New("only completed orders can be reviewed", http.StatusBadRequest)
	}
	if order.ReviewGivenAt != nil {
		return nil, apiError.New("order has already been reviewed", http.StatusBadRequest)
	}

	now := time.Now()
	order.ReviewRating = request.Rating
	order.ReviewComment = request.Comment
	order.ReviewGivenAt = &now
	if err := o.orderRepo.UpdateOrder(order); err != nil {
		log.Printf("ReviewOrder error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return order, nil
}

func (o *orderService) participantOrder(id, callerID uint) (*models.Order, *apiError.Error) {
	order, err := o.orderRepo.FindOrderByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("order not found", http.StatusNotFound)
		}
		log.Printf("order lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if order.ClientID != callerID && order.ProfessionalID != callerID {
		return nil, apiError.New("you are not a participant in this order", http.StatusForbidden)
	}
	return order, nil
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusInProgress,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}
