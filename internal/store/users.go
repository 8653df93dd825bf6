package store

import (
	"context"
	"errors"
	"fmt"

	"levelup/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Registration holds the fields required to create an account.
type Registration struct {
	Email     string
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// TokenIssuer creates the bearer token for a newly registered user.
type TokenIssuer func(userID uint) (string, error)

// RegisterUser creates the user and its token in one transaction and returns the token key.
func (s *Store) RegisterUser(ctx context.Context, reg Registration, issue TokenIssuer) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var key string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", reg.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		user := models.User{
			Username:     reg.Username,
			Email:        reg.Email,
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			PasswordHash: string(hashedPassword),
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		key, err = issue(user.ID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		if err := tx.Create(&models.AuthToken{Key: key, UserID: user.ID}).Error; err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Authenticate checks the credentials and returns the user's existing token.
// ok is false when the username is unknown or the password does not match.
func (s *Store) Authenticate(ctx context.Context, username, password string) (token string, ok bool, err error) {
	var user models.User
	err = s.db.WithContext(ctx).Preload("Token").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", false, nil
	}
	if user.Token == nil {
		return "", false, fmt.Errorf("user %d has no token", user.ID)
	}
	return user.Token.Key, true, nil
}

// UserForToken resolves a bearer token to the user that owns it.
func (s *Store) UserForToken(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, fmt.Errorf("token: %w", ErrNotFound)
	}

	var token models.AuthToken
	err := s.db.WithContext(ctx).Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return &token.User, nil
}
