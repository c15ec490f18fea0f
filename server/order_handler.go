package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleCreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateOrderRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.CreateOrder(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Order created successfully", http.StatusCreated, order, nil)
	}
}

func (s *Server) handleGetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.GetOrder(id, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Order retrieved successfully", http.StatusOK, order, nil)
	}
}

func (s *Server) handleGetClientOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		orders, apiErr := s.OrderService.GetClientOrders(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Orders retrieved successfully", http.StatusOK, orders, nil)
	}
}

func (s *Server) handleGetProfessionalOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		orders, apiErr := s.OrderService.GetProfessionalOrders(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Orders retrieved successfully", http.StatusOK, orders, nil)
	}
}

func (s *Server) handleUpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		request := struct {
			Status string `json:"status" binding:"required"`
		}{}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.UpdateOrderStatus(id, userID, request.Status)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Order status updated successfully", http.StatusOK, order, nil)
	}
}

func (s *Server) handleCancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.CancelOrder(id, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Order cancelled successfully", http.StatusOK, order, nil)
	}
}

func (s *Server) handleAddOrderFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		request := struct {
			Feedback string `json:"feedback" binding:"required"`
		}{}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.AddFeedback(id, userID, request.Feedback)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Feedback recorded successfully", http.StatusOK, order, nil)
	}
}

func (s *Server) handleReviewOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var request models.OrderReviewRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		order, apiErr := s.OrderService.ReviewOrder(id, userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Review recorded successfully", http.StatusOK, order, nil)
	}
}
