package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleListConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		conversations, apiErr := s.ChatService.ListConversations(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversations retrieved successfully", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUUID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, apiErr := s.ChatService.GetConversation(id, userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversation retrieved successfully", http.StatusOK, conversation, nil)
	}
}

// handleCreateConversation returns the existing thread when one already
// exists for the pair, distinguishing the two cases by status code.
func (s *Server) handleCreateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, created, apiErr := s.ChatService.CreateOrGetConversation(userID, request.ParticipantID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		if created {
			response.JSON(c, "Conversation created successfully", http.StatusCreated, conversation, nil)
			return
		}
		response.JSON(c, "Conversation retrieved successfully", http.StatusOK, conversation, nil)
	}
}

func (s *Server) handleUpdateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		id, err := paramUUID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var request models.UpdateConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conversation, apiErr := s.ChatService.UpdateUnreadCount(id, userID, *request.UnreadCount)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversation updated successfully", http.StatusOK, conversation, nil)
	}
}
