package services

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
	"github.com/dresslink/dresslink/services/jwt"
)

type AuthService interface {
	SignupUser(request *models.SignupRequest, callerRole string) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GoogleLoginUser(loginRequest *models.GoogleLoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, error)
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
	RegisterDeviceToken(userID uint, token string) error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

// SignupUser registers an account. Only an admin caller may create another
// admin.
func (a *authService) SignupUser(request *models.SignupRequest, callerRole string) (*models.User, *apiError.Error) {
	if err := request.ValidateSignup(); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	roleName := request.Role
	if roleName == "" {
		roleName = models.RoleCustomer
	}
	if !models.IsValidRole(roleName) {
		return nil, apiError.New("invalid role", http.StatusBadRequest)
	}
	if roleName == models.RoleAdmin && callerRole != models.RoleAdmin {
		return nil, apiError.New("you are not authorized to create an admin user", http.StatusForbidden)
	}

	if err := a.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	if err := a.authRepo.IsPhoneExist(request.Telephone); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	role, err := a.authRepo.FindRoleByName(roleName)
	if err != nil {
		log.Printf("SignupUser error fetching role: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		Telephone:      request.Telephone,
		Address:        request.Address,
		Image:          request.Image,
		RoleID:         role.ID,
	}
	if _, err := a.authRepo.CreateUser(user); err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	createdUser, err := a.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return createdUser, nil
}

// LoginUser verifies the credentials and returns a token pair.
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	return a.loginResponse(foundUser)
}

// GoogleLoginUser logs in a Google-verified email, creating a customer
// account on first sight.
func (a *authService) GoogleLoginUser(loginRequest *models.GoogleLoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.createGoogleUser(loginRequest)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}
	return a.loginResponse(foundUser)
}

func (a *authService) createGoogleUser(loginRequest *models.GoogleLoginRequest) (*models.LoginResponse, *apiError.Error) {
	role, err := a.authRepo.FindRoleByName(models.RoleCustomer)
	if err != nil {
		log.Printf("createGoogleUser error fetching role: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	first, last := splitName(loginRequest.Name)
	user := &models.User{
		FirstName: first,
		LastName:  last,
		Email:     loginRequest.Email,
		Image:     loginRequest.Image,
		IsSocial:  true,
		RoleID:    role.ID,
	}
	if _, err := a.authRepo.CreateUser(user); err != nil {
		log.Printf("createGoogleUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	created, err := a.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("createGoogleUser refetch error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return a.loginResponse(created)
}

func (a *authService) loginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	roleName := user.Role.Name
	if roleName == "" {
		role, err := a.authRepo.FindRoleByID(user.RoleID)
		if err != nil {
			log.Printf("Error fetching role for user %s: %v", user.Email, err)
			return nil, apiError.New("unable to fetch role", http.StatusInternalServerError)
		}
		roleName = role.Name
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, a.Config.JWTSecret,
		roleName == models.RoleAdmin, user.ID, roleName)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", user.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	summary := user.Summary()
	summary.RoleName = roleName
	return &models.LoginResponse{
		UserSummary:  summary,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	return a.authRepo.FindUserByID(userID)
}

func (a *authService) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	return a.authRepo.EditUserProfile(userID, details)
}

// ResetPassword validates the reset token and replaces the stored hash.
func (a *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	userID, err := jwt.ValidatePasswordResetToken(token, a.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("ResetPassword error fetching user: %v", err)
		return apiError.ErrInternalServerError
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ResetPassword hash error: %v", err)
		return apiError.ErrInternalServerError
	}
	if err := a.authRepo.UpdatePassword(string(hashedPassword), user.Email); err != nil {
		log.Printf("ResetPassword update error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) RegisterDeviceToken(userID uint, token string) error {
	return a.authRepo.SaveDeviceToken(userID, token)
}

func splitName(full string) (string, string) {
	first, last := full, ""
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			first, last = full[:i], full[i+1:]
			break
		}
	}
	return first, last
}
