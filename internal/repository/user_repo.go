package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// UserRepository provides data access for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a gorm-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, role).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("last_name asc, first_name asc").
		Find(&users).Error
	return users, err
}
