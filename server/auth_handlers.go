package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	errs "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/server/response"
	jwtPackage "github.com/dresslink/dresslink/services/jwt"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, apiErr := s.AuthService.SignupUser(&request, currentRole(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Signup successful", http.StatusCreated, user.Summary(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		userResponse, apiErr := s.AuthService.LoginUser(&request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate state", http.StatusInternalServerError, nil, err)
			return
		}

		authURL := s.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// Thread-safe in-memory state store
var stateStore = sync.Map{}

func removeState(state string) {
	stateStore.Delete(state)
}

func generateJWTState(secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(10 * time.Minute).Unix(),
	})
	state, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	stateStore.Store(state, struct{}{})
	return state, nil
}

func verifyState(state string, secret string) bool {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if !verifyState(state, s.Config.JWTSecret) {
			response.JSON(c, "", http.StatusForbidden, nil, errs.New("invalid or expired state", http.StatusForbidden))
			return
		}
		removeState(state)

		tokenResponse, err := exchangeCodeForToken(code, s.Config.GoogleClientID, s.Config.GoogleClientSecret, s.Config.GoogleRedirectURL)
		if err != nil {
			log.Printf("Token exchange failed: %v", err)
			response.JSON(c, "token exchange failed", http.StatusInternalServerError, nil, err)
			return
		}

		accessToken, ok := tokenResponse["access_token"].(string)
		if !ok || accessToken == "" {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("access token missing in response", http.StatusInternalServerError))
			return
		}

		userData, err := getUserDataFromGoogle(accessToken)
		if err != nil {
			log.Printf("Failed to fetch user information: %v", err)
			response.JSON(c, "failed to fetch user information", http.StatusInternalServerError, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.GoogleLoginUser(&userData)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func exchangeCodeForToken(code, clientID, clientSecret, redirectURI string) (map[string]interface{}, error) {
	tokenURL := "https://oauth2.googleapis.com/token"
	data := url.Values{
		"code":          {code},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"redirect_uri":  {redirectURI},
		"grant_type":    {"authorization_code"},
	}

	resp, err := http.PostForm(tokenURL, data)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tokenResponse map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, err
	}
	return tokenResponse, nil
}

func getUserDataFromGoogle(accessToken string) (models.GoogleLoginRequest, error) {
	var userData models.GoogleLoginRequest

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(accessToken))
	if err != nil {
		return userData, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return userData, fmt.Errorf("google userinfo request failed: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&userData); err != nil {
		return userData, err
	}
	return userData, nil
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthRepository.FindUserByEmail(request.Email)
		if err != nil || user == nil {
			response.JSON(c, "", http.StatusNotFound, nil, fmt.Errorf("user not found"))
			return
		}

		resetToken, err := jwtPackage.GeneratePasswordResetToken(user.ID, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate reset token", http.StatusInternalServerError, nil, err)
			return
		}

		baseURL := s.Config.BaseUrl
		if baseURL == "" {
			baseURL = "http://localhost:3000"
		}
		resetLink := fmt.Sprintf("%s/reset-password/%s", baseURL, resetToken)

		if _, err := s.Mail.SendResetPassword(user.Email, resetLink); err != nil {
			response.JSON(c, "connection to mail service interrupted", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.ResetPassword(&request, c.Param("token")); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Password Reset Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		accessToken, _ := c.Get("access_token")
		token, _ := accessToken.(string)
		blacklist := &models.Blacklist{
			Email: user.Email,
			Token: token,
		}
		if err := s.AuthRepository.AddToBlackList(blacklist); err != nil {
			log.Printf("logout error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		user, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "User profile retrieved successfully", http.StatusOK, user, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.EditProfileRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.EditUserProfile(userID, &request); err != nil {
			log.Printf("edit profile error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "Profile updated successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleRegisterDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		request := struct {
			Token string `json:"token" binding:"required"`
		}{}
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.RegisterDeviceToken(userID, request.Token); err != nil {
			log.Printf("register device token error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "Device token registered", http.StatusOK, nil, nil)
	}
}
