package user

import (
	"collaborative-docs-backend/internal/errors"
	defError "errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service defines the interface for user business logic
type Service interface {
	Register(user *User) error
	Login(email, password string) (*User, error)
	ResetPassword(email, newPassword string) error
	GetUserByID(id string) (*User, error)
	ListUsers() ([]SafeUser, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository UserRepository
}

// NewService creates a new user service
func NewService(repository UserRepository) Service {
	return &DefaultService{repository: repository}
}

// Register registers a new user
func (s *DefaultService) Register(user *User) error {
	// Check if user with email already exists
	_, err := s.repository.FindByEmail(user.Email)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		return errors.BadRequest("Email already registered", nil)
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return errors.Internal(err)
	}

	user.ID = uuid.NewString()
	user.PasswordHash = hash

	return s.repository.Create(user)
}

// Login authenticates a user
func (s *DefaultService) Login(email, password string) (*User, error) {
	// Find user by email
	user, err := s.repository.FindByEmail(email)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.BadRequest("User not found", err)
		}
		return nil, err
	}

	// Check password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(truncatePassword(password)))
	if err != nil {
		return nil, errors.BadRequest("Wrong password", err)
	}

	return user, nil
}

// ResetPassword replaces the password of an existing account
func (s *DefaultService) ResetPassword(email, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return errors.Internal(err)
	}

	err = s.repository.UpdatePasswordByEmail(email, hash)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("User not found", err)
	}
	return err
}

// GetUserByID gets a user by ID
func (s *DefaultService) GetUserByID(id string) (*User, error) {
	return s.repository.FindByID(id)
}

// ListUsers returns all users without sensitive fields
func (s *DefaultService) ListUsers() ([]SafeUser, error) {
	users, err := s.repository.ListAll()
	if err != nil {
		return nil, err
	}

	result := make([]SafeUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.ToSafeUser())
	}
	return result, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// bcrypt rejects inputs over 72 bytes
func truncatePassword(password string) string {
	if len(password) > 72 {
		return password[:72]
	}
	return password
}
