package store

import (
	"context"
	"fmt"
	"time"

	"levelup/backend/internal/models"
	"levelup/backend/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventInput holds the writable fields of an event.
type EventInput struct {
	Name     string
	DateTime time.Time
	Location string
	GameID   uint
}

func (s *Store) events(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Game").
		Preload("Attendees", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.id")
		})
}

// ListEvents returns every event, or only the events for gameID when it is non-nil.
func (s *Store) ListEvents(ctx context.Context, gameID *uint) ([]models.Event, error) {
	query := s.events(ctx).Order("id")
	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns a single event with its organizer, game, and attendees.
func (s *Store) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := s.events(ctx).First(&event, id).Error; err != nil {
		return nil, notFound(err, "event", id)
	}
	return &event, nil
}

// CreateEvent schedules an event organized by the caller.
func (s *Store) CreateEvent(ctx context.Context, caller *models.User, in EventInput) (*models.Event, error) {
	if caller == nil {
		return nil, policy.ErrUnauthenticated
	}
	if err := s.gameExists(ctx, in.GameID); err != nil {
		return nil, err
	}

	event := models.Event{
		Name:        in.Name,
		DateTime:    in.DateTime.UTC(),
		Location:    in.Location,
		GameID:      in.GameID,
		OrganizerID: caller.ID,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return s.GetEvent(ctx, event.ID)
}

// UpdateEvent replaces the writable fields of an event. Only the organizer may update it,
// and the organizer never changes.
func (s *Store) UpdateEvent(ctx context.Context, caller *models.User, id uint, in EventInput) error {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return notFound(err, "event", id)
	}
	if err := policy.Authorize(caller, event); err != nil {
		return err
	}
	if err := s.gameExists(ctx, in.GameID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Model(&event).Select("Name", "DateTime", "Location", "GameID").Updates(models.Event{
		Name:     in.Name,
		DateTime: in.DateTime.UTC(),
		Location: in.Location,
		GameID:   in.GameID,
	}).Error
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	return nil
}

// JoinEvent adds the caller to the event's attendees. Joining twice has no further effect;
// joined reports whether this call added the caller.
func (s *Store) JoinEvent(ctx context.Context, caller *models.User, eventID uint) (event *models.Event, joined bool, err error) {
	if caller == nil {
		return nil, false, policy.ErrUnauthenticated
	}
	if err := s.eventExists(ctx, eventID); err != nil {
		return nil, false, err
	}

	attendee := models.EventAttendee{EventID: eventID, UserID: caller.ID}
	result := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&attendee)
	if result.Error != nil {
		return nil, false, fmt.Errorf("join event %d: %w", eventID, result.Error)
	}

	event, err = s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, false, err
	}
	return event, result.RowsAffected > 0, nil
}

// LeaveEvent removes the caller from the event's attendees.
func (s *Store) LeaveEvent(ctx context.Context, caller *models.User, eventID uint) error {
	if caller == nil {
		return policy.ErrUnauthenticated
	}
	if err := s.eventExists(ctx, eventID); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, caller.ID).
		Delete(&models.EventAttendee{})
	if result.Error != nil {
		return fmt.Errorf("leave event %d: %w", eventID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotAttending
	}
	return nil
}

func (s *Store) gameExists(ctx context.Context, id uint) error {
	return s.exists(ctx, &models.Game{}, "game", id)
}

func (s *Store) eventExists(ctx context.Context, id uint) error {
	return s.exists(ctx, &models.Event{}, "event", id)
}

func (s *Store) exists(ctx context.Context, model any, resource string, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s %d: %w", resource, id, err)
	}
	if count == 0 {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
