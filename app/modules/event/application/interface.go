package eventservice

import (
	"context"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	"github.com/artifa-fest/registration/internal/results"
)

// EventOperationResult is the result envelope for catalog operations.
type EventOperationResult = results.OperationResult

// Service is the admin-facing contract for the event catalog.
type Service interface {
	CreateEvent(ctx context.Context, input EventInput) (EventOperationResult, error)
	UpdateEvent(ctx context.Context, id int64, input EventInput) (EventOperationResult, error)
	GetEvent(ctx context.Context, id int64) (*eventdb.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*eventdb.Event, error)
	ListEvents(ctx context.Context) ([]eventdb.Event, error)
}

var _ Service = (*EventService)(nil)
