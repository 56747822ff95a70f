package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/artifa-fest/registration/internal/db/pgerr"
)

// EventDBImpl is the bun-backed event catalog repository.
type EventDBImpl struct{}

var _ Repository = (*EventDBImpl)(nil)

func (r *EventDBImpl) Create(ctx context.Context, db bun.IDB, event *Event) error {
	_, err := db.NewInsert().Model(event).Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *EventDBImpl) Update(ctx context.Context, db bun.IDB, event *Event) error {
	event.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(event).
		WherePK().
		ExcludeColumn("created_at").
		Exec(ctx)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventDBImpl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Event, error) {
	event := &Event{}
	err := db.NewSelect().Model(event).Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventDBImpl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Event, error) {
	event := &Event{}
	err := db.NewSelect().Model(event).Where("e.slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventDBImpl) List(ctx context.Context, db bun.IDB) ([]Event, error) {
	var events []Event
	err := db.NewSelect().Model(&events).Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventDBImpl) ListByType(ctx context.Context, db bun.IDB, eventType EventType) ([]Event, error) {
	var events []Event
	err := db.NewSelect().Model(&events).Where("e.event_type = ?", eventType).Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
