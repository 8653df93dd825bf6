package store

import (
	"context"
	"fmt"

	"levelup/backend/internal/models"
	"levelup/backend/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameInput holds the writable fields of a game.
type GameInput struct {
	Name            string
	Manufacturer    string
	NumberOfPlayers int
	TypeID          uint
}

func (s *Store) games(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Type").Preload("Creator")
}

// ListGames returns every game with its type and creator.
func (s *Store) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.games(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// GetGame returns a single game with its type and creator.
func (s *Store) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := s.games(ctx).First(&game, id).Error; err != nil {
		return nil, notFound(err, "game", id)
	}
	return &game, nil
}

// CreateGame adds a game owned by the caller.
func (s *Store) CreateGame(ctx context.Context, caller *models.User, in GameInput) (*models.Game, error) {
	if caller == nil {
		return nil, policy.ErrUnauthenticated
	}
	if _, err := s.GetGameType(ctx, in.TypeID); err != nil {
		return nil, err
	}

	game := models.Game{
		Name:            in.Name,
		Manufacturer:    in.Manufacturer,
		NumberOfPlayers: in.NumberOfPlayers,
		TypeID:          in.TypeID,
		CreatorID:       caller.ID,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&game).Error; err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return s.GetGame(ctx, game.ID)
}

// UpdateGame replaces the writable fields of a game. Only the creator may update it,
// and the creator never changes.
func (s *Store) UpdateGame(ctx context.Context, caller *models.User, id uint, in GameInput) error {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return notFound(err, "game", id)
	}
	if err := policy.Authorize(caller, game); err != nil {
		return err
	}
	if _, err := s.GetGameType(ctx, in.TypeID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Model(&game).Select("Name", "Manufacturer", "NumberOfPlayers", "TypeID").Updates(models.Game{
		Name:            in.Name,
		Manufacturer:    in.Manufacturer,
		NumberOfPlayers: in.NumberOfPlayers,
		TypeID:          in.TypeID,
	}).Error
	if err != nil {
		return fmt.Errorf("update game %d: %w", id, err)
	}
	return nil
}
