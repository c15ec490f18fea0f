package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleListMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		conversationID, err := paramUUID(c, "conversationId")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		page := queryInt(c, "page", 0)
		limit := queryInt(c, "limit", 0)

		messages, apiErr := s.ChatService.ListMessages(conversationID, userID, page, limit)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Messages retrieved successfully", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.SendMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		message, apiErr := s.ChatService.SendMessage(userID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleMarkMessageRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		messageID, err := paramUUID(c, "messageId")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ChatService.MarkMessageRead(messageID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message marked as read", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		count, apiErr := s.ChatService.UnreadCount(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Unread count retrieved successfully", http.StatusOK, gin.H{"unread_count": count}, nil)
	}
}

func (s *Server) handleDeleteMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		messageID, err := paramUUID(c, "messageId")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ChatService.DeleteMessage(messageID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message deleted successfully", http.StatusOK, nil, nil)
	}
}
