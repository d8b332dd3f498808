package repository

import "github.com/quoteflow/quoteflow/internal/domain/entity"

// UserRepository is the persistence port for user accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
