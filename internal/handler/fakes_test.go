package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/model"
	"github.com/iliyamo/luxury-estate-api/internal/queue"
	"github.com/iliyamo/luxury-estate-api/internal/repository"
)

var errStoreDown = errors.New("connection refused")

// memLeadStore keeps leads in memory, newest first on List.
type memLeadStore struct {
	mu    sync.Mutex
	leads []model.Lead
	err   error
}

func (s *memLeadStore) Create(ctx context.Context, l *model.Lead) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt, l.UpdatedAt = now, now
	s.leads = append(s.leads, *l)
	return l.ID.Hex(), nil
}

func (s *memLeadStore) List(ctx context.Context, limit int) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []model.Lead{}
	for i := len(s.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.leads[i])
	}
	return out, nil
}

// chanPublisher forwards events to a buffered channel.
type chanPublisher struct {
	events chan queue.LeadCreatedEvent
	err    error
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan queue.LeadCreatedEvent, 8)}
}

func (p *chanPublisher) PublishLeadCreated(ctx context.Context, ev queue.LeadCreatedEvent) error {
	p.events <- ev
	return p.err
}

// fakeInspector scripts the diagnostic route's view of the database.
type fakeInspector struct {
	available bool
	name      string
	names     []string
	err       error
}

func (f fakeInspector) Available() bool      { return f.available }
func (f fakeInspector) DatabaseName() string { return f.name }
func (f fakeInspector) CollectionNames(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

// failingProjects fails every call.
type failingProjects struct{}

func (failingProjects) ListAll(ctx context.Context) ([]model.Project, error) {
	return nil, errStoreDown
}
func (failingProjects) GetByID(ctx context.Context, id string) (model.Project, error) {
	return model.Project{}, errStoreDown
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func newLeadHandler(store LeadStore, pub LeadEventPublisher) *LeadHandler {
	return NewLeadHandler(store, repository.NewProjectRepo(), pub, zap.NewNop())
}
