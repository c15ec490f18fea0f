package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dresslink/dresslink/models"
)

// fakeStoreAuthRepo gives the chat service just enough of the auth
// repository to resolve participants. The remaining methods exist only to
// satisfy the interface.
type fakeStoreAuthRepo struct {
	store *fakeConversationStore
}

func (f *fakeStoreAuthRepo) FindUserByID(id uint) (*models.User, error) {
	user, ok := f.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStoreAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	f.store.users[user.ID] = user
	return user, nil
}

func (f *fakeStoreAuthRepo) IsEmailExist(email string) error { return nil }
func (f *fakeStoreAuthRepo) IsPhoneExist(phone string) error { return nil }

func (f *fakeStoreAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	for _, user := range f.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStoreAuthRepo) UpdateUser(user *models.User) error { return nil }

func (f *fakeStoreAuthRepo) UpdatePassword(password string, email string) error { return nil }

func (f *fakeStoreAuthRepo) EditUserProfile(userID uint, details *models.EditProfileRequest) error {
	return nil
}

func (f *fakeStoreAuthRepo) AddToBlackList(blacklist *models.Blacklist) error { return nil }

func (f *fakeStoreAuthRepo) IsTokenInBlacklist(token string) bool { return false }

func (f *fakeStoreAuthRepo) FindRoleByID(roleID uuid.UUID) (*models.Role, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStoreAuthRepo) FindRoleByName(name string) (*models.Role, error) {
	return &models.Role{ID: uuid.New(), Name: name}, nil
}

func (f *fakeStoreAuthRepo) SaveDeviceToken(userID uint, token string) error { return nil }

func (f *fakeStoreAuthRepo) FindDeviceTokens(userID uint) ([]string, error) { return nil, nil }
