package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/kcal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID string) (models.User, bool, error) {
	return repo.findOne(ctx, "id = ?", userID)
}

func (repo *UserRepository) FindByExternalID(ctx context.Context, externalID string) (models.User, bool, error) {
	return repo.findOne(ctx, "external_id = ?", externalID)
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	return repo.database.WithContext(ctx).Create(user).Error
}

// Save writes the whole record back; concurrent saves for one user are
// last-write-wins.
func (repo *UserRepository) Save(ctx context.Context, user *models.User) error {
	return repo.database.WithContext(ctx).Save(user).Error
}

func (repo *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) findOne(ctx context.Context, query string, value string) (models.User, bool, error) {
	var user models.User
	err := repo.database.WithContext(ctx).Where(query, value).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}
