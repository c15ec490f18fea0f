package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	IsPhoneExist(phone string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(password string, email string) error
	EditUserProfile(userID uint, details *models.EditProfileRequest) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	FindRoleByID(roleID uuid.UUID) (*models.Role, error)
	FindRoleByName(name string) (*models.Role, error)
	SaveDeviceToken(userID uint, token string) error
	FindDeviceTokens(userID uint) ([]string, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	if user.RoleID == uuid.Nil {
		role, err := a.FindRoleByName(models.RoleCustomer)
		if err != nil {
			log.Printf("CreateUser error fetching default role: %v", err)
			return nil, err
		}
		user.RoleID = role.ID
	}

	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsPhoneExist(phone string) error {
	if phone == "" {
		return nil
	}
	var count int64
	err := a.DB.Model(&models.User{}).Where("telephone = ?", phone).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return fmt.Errorf("phone number already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).
		Update("hashed_password", password).Error
}

func (a *authRepo) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	updates := map[string]interface{}{}
	if details.FirstName != "" {
		updates["first_name"] = details.FirstName
	}
	if details.LastName != "" {
		updates["last_name"] = details.LastName
	}
	if details.Telephone != "" {
		updates["telephone"] = details.Telephone
	}
	if details.Address != "" {
		updates["address"] = details.Address
	}
	if details.Image != "" {
		updates["image"] = details.Image
	}
	if len(updates) == 0 {
		return nil
	}
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", strings.TrimSpace(token)).Count(&count)
	return count > 0
}

func (a *authRepo) FindRoleByID(roleID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("id = ?", roleID).First(&role).Error; err != nil {
		return nil, errors.Wrap(err, "unable to fetch role")
	}
	return &role, nil
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, errors.Wrap(err, "unable to fetch role")
	}
	return &role, nil
}

func (a *authRepo) SaveDeviceToken(userID uint, token string) error {
	var existing models.DeviceToken
	err := a.DB.Where("user_id = ? AND token = ?", userID, token).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return a.DB.Create(&models.DeviceToken{UserID: userID, Token: token}).Error
}

func (a *authRepo) FindDeviceTokens(userID uint) ([]string, error) {
	var tokens []string
	err := a.DB.Model(&models.DeviceToken{}).Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch device tokens")
	}
	return tokens, nil
}
