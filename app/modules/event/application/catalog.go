package eventservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

var (
	ErrInvalidEventType = errors.New("event type must be technical or non-technical")
	ErrInvalidTeamSize  = errors.New("team sizes must satisfy 1 <= min <= max")
	ErrNameRequired     = errors.New("event name is required")
)

// EventInput carries the admin-supplied catalog fields.
type EventInput struct {
	Name        string
	Slug        string
	Description string
	EventType   eventdb.EventType
	IsTeamEvent bool
	MinTeamSize int
	MaxTeamSize int
	IconClass   string
	StartTime   *time.Time
	EndTime     *time.Time
	EventDate   *time.Time
	Duration    *string
	Venue       *string
}

// EventCreatedPayload is the success payload for CreateEvent and UpdateEvent.
type EventCreatedPayload struct {
	Event *eventdb.Event `json:"event"`
}

// EventOperationFailedPayload is the failure payload for catalog operations.
type EventOperationFailedPayload struct {
	Reason string `json:"reason"`
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if !in.EventType.IsValid() {
		return ErrInvalidEventType
	}
	if in.MinTeamSize < 1 || in.MaxTeamSize < in.MinTeamSize {
		return ErrInvalidTeamSize
	}
	return nil
}

func (in EventInput) apply(event *eventdb.Event) {
	event.Name = strings.TrimSpace(in.Name)
	event.Slug = strings.TrimSpace(in.Slug)
	event.Description = in.Description
	event.EventType = in.EventType
	event.IsTeamEvent = in.IsTeamEvent
	event.MinTeamSize = in.MinTeamSize
	event.MaxTeamSize = in.MaxTeamSize
	if in.IconClass != "" {
		event.IconClass = in.IconClass
	}
	event.StartTime = in.StartTime
	event.EndTime = in.EndTime
	event.EventDate = in.EventDate
	event.Duration = in.Duration
	event.Venue = in.Venue
}

// CreateEvent adds a catalog entry after validating its bounds.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (EventOperationResult, error) {
	return s.withTelemetry(ctx, "create_event", func(ctx context.Context) (results.OperationResult, error) {
		if err := input.validate(); err != nil {
			return catalogFailure(err), nil
		}

		event := &eventdb.Event{}
		input.apply(event)

		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return s.repo.Create(ctx, tx, event)
		})
		if err != nil {
			if errors.Is(err, eventdb.ErrSlugTaken) {
				return catalogFailure(err), nil
			}
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&EventCreatedPayload{Event: event}), nil
	})
}

// UpdateEvent edits an existing catalog entry.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, input EventInput) (EventOperationResult, error) {
	return s.withTelemetry(ctx, "update_event", func(ctx context.Context) (results.OperationResult, error) {
		if err := input.validate(); err != nil {
			return catalogFailure(err), nil
		}

		var event *eventdb.Event
		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			existing, err := s.repo.GetByID(ctx, tx, id)
			if err != nil {
				return err
			}
			input.apply(existing)
			if err := s.repo.Update(ctx, tx, existing); err != nil {
				return err
			}
			event = existing
			return nil
		})
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) || errors.Is(err, eventdb.ErrSlugTaken) {
				return catalogFailure(err), nil
			}
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&EventCreatedPayload{Event: event}), nil
	})
}

// GetEvent fetches a catalog entry by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*eventdb.Event, error) {
	var event *eventdb.Event
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := s.repo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		event = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get_event: %w", err)
	}
	return event, nil
}

// GetEventBySlug fetches a catalog entry by slug.
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*eventdb.Event, error) {
	var event *eventdb.Event
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := s.repo.GetBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		event = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get_event_by_slug: %w", err)
	}
	return event, nil
}

// ListEvents returns the whole catalog ordered by name.
func (s *EventService) ListEvents(ctx context.Context) ([]eventdb.Event, error) {
	var events []eventdb.Event
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := s.repo.List(ctx, tx)
		if err != nil {
			return err
		}
		events = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list_events: %w", err)
	}
	return events, nil
}

func catalogFailure(err error) results.OperationResult {
	return results.FailureResult(&EventOperationFailedPayload{Reason: err.Error()}, err)
}
