package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
	"github.com/dresslink/dresslink/services/jwt"
)

func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "Access token is blacklisted", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		user, err := s.userFromToken(accessToken)
		if err != nil {
			switch {
			case errors.Is(err, errs.InActiveUserError):
				respondAndAbort(c, "inactive user", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
			default:
				respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			}
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Set("role", user.Role.Name)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// userFromToken validates an access token and loads the user it names. It is
// shared by the Authorize middleware and the websocket handshake.
func (s *Server) userFromToken(accessToken string) (*models.User, error) {
	accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
	if err != nil {
		return nil, err
	}

	idValue, ok := accessClaims["id"].(float64)
	if !ok {
		return nil, errors.New("invalid userID format")
	}
	return s.AuthRepository.FindUserByID(uint(idValue))
}

func limitRateForPasswordReset(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        keyFunc,
		BeforeResponse: nil,
	})
}

// keyFunc rate-limits by the email in the request body, falling back to the
// client IP when no email is present.
func keyFunc(c *gin.Context) string {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))

	var foundUser models.ForgotPassword
	if err := decode(c, &foundUser); err != nil {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
		return c.ClientIP()
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
	return foundUser.Email
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}
