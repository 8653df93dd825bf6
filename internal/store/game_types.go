package store

import (
	"context"
	"fmt"

	"levelup/backend/internal/models"
)

// ListGameTypes returns every game type ordered by id.
func (s *Store) ListGameTypes(ctx context.Context) ([]models.GameType, error) {
	var gameTypes []models.GameType
	if err := s.db.WithContext(ctx).Order("id").Find(&gameTypes).Error; err != nil {
		return nil, fmt.Errorf("list game types: %w", err)
	}
	return gameTypes, nil
}

// GetGameType returns a single game type.
func (s *Store) GetGameType(ctx context.Context, id uint) (*models.GameType, error) {
	var gameType models.GameType
	if err := s.db.WithContext(ctx).First(&gameType, id).Error; err != nil {
		return nil, notFound(err, "game type", id)
	}
	return &gameType, nil
}
