package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account on the marketplace. A user is referenced,
// never owned, by listings, orders, appointments and conversations.
type User struct {
	Model
	FirstName      string    `json:"fname" binding:"required,min=2" conform:"trim"`
	LastName       string    `json:"lname" binding:"required,min=2" conform:"trim"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string    `json:"-"`
	Telephone      string    `json:"phone" gorm:"default:null"`
	Address        string    `json:"address"`
	Image          string    `json:"image"`
	IsSocial       bool      `json:"-"`
	IsBlocked      bool      `json:"is_blocked" gorm:"default:false"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

// DeviceToken is a push-notification token registered by a client device.
type DeviceToken struct {
	Model
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Token  string `gorm:"not null" json:"token"`
}

// UserSummary is the participant shape embedded in conversation and
// message payloads.
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	RoleName  string `json:"role_name,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Image:     u.Image,
		RoleName:  u.Role.Name,
	}
}

type SignupRequest struct {
	FirstName string `json:"fname" binding:"required,min=2" conform:"trim"`
	LastName  string `json:"lname" binding:"required,min=2" conform:"trim"`
	Email     string `json:"email" binding:"required,email" conform:"email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
	Telephone string `json:"phone"`
	Address   string `json:"address" conform:"trim"`
	Image     string `json:"image"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"picture"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type EditProfileRequest struct {
	FirstName string `json:"fname" conform:"trim"`
	LastName  string `json:"lname" conform:"trim"`
	Telephone string `json:"phone"`
	Address   string `json:"address" conform:"trim"`
	Image     string `json:"image"`
}

type LoginResponse struct {
	UserSummary
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// ValidateSignup trims whitespace in place and checks the password policy.
func (r *SignupRequest) ValidateSignup() error {
	if err := validateWhiteSpaces(r); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// VerifyPassword compares the supplied password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
