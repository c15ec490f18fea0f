package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleCreateGig() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateGigRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		gig, apiErr := s.GigService.CreateGig(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gig created successfully", http.StatusCreated, gig, nil)
	}
}

func (s *Server) handleGetGig() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramUint(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		gig, apiErr := s.GigService.GetGig(id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gig retrieved successfully", http.StatusOK, gig, nil)
	}
}

func (s *Server) handleGetAllGigs() gin.HandlerFunc {
	return func(c *gin.Context) {
		gigs, apiErr := s.GigService.GetAllGigs()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gigs retrieved successfully", http.StatusOK, gigs, nil)
	}
}

func (s *Server) handleGetMyGigs() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		gigs, apiErr := s.GigService.GetUserGigs(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gigs retrieved successfully", http.StatusOK, gigs, nil)
	}
}

func (s *Server) handleUpdateGig() gin.HandlerFunc {
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

		var request models.CreateGigRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		gig, apiErr := s.GigService.UpdateGig(id, userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gig updated successfully", http.StatusOK, gig, nil)
	}
}

func (s *Server) handleDeleteGig() gin.HandlerFunc {
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

		if apiErr := s.GigService.DeleteGig(id, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gig deleted successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleSearchGigs() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.GigFilter{
			City:     c.Query("city"),
			MinPrice: queryInt(c, "min_price", 0),
			MaxPrice: queryInt(c, "max_price", 0),
		}

		gigs, apiErr := s.GigService.SearchGigs(filter)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Gigs retrieved successfully", http.StatusOK, gigs, nil)
	}
}
