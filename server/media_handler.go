package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/server/response"
)

func (s *Server) handleUploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.JSON(c, "no file provided", http.StatusBadRequest, nil, err)
			return
		}

		result, apiErr := s.MediaService.UploadImage(userID, fileHeader)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "File uploaded successfully", http.StatusOK, result, nil)
	}
}
