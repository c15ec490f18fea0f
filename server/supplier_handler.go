package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleCreateSupplier() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateSupplierRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.SupplierService.CreateProfile(userID, currentRole(c), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profile created successfully", http.StatusCreated, profile, nil)
	}
}

func (s *Server) handleGetSupplier() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.SupplierService.GetProfile(id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profile retrieved successfully", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleGetAllSuppliers() gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, apiErr := s.SupplierService.GetAllProfiles()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profiles retrieved successfully", http.StatusOK, profiles, nil)
	}
}

func (s *Server) handleGetMySuppliers() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		profiles, apiErr := s.SupplierService.GetUserProfiles(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profiles retrieved successfully", http.StatusOK, profiles, nil)
	}
}

func (s *Server) handleUpdateSupplier() gin.HandlerFunc {
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

		var request models.CreateSupplierRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.SupplierService.UpdateProfile(id, userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profile updated successfully", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleDeleteSupplier() gin.HandlerFunc {
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

		if apiErr := s.SupplierService.DeleteProfile(id, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profile deleted successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleSearchSuppliers() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.SupplierFilter{
			City:     c.Query("city"),
			Material: c.Query("material"),
		}

		profiles, apiErr := s.SupplierService.SearchProfiles(filter)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Shop profiles retrieved successfully", http.StatusOK, profiles, nil)
	}
}
