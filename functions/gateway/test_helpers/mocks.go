package test_helpers

import (
	"context"
	"sync"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type MockLedgerService struct {
	RegisterFunc func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error)
	mu           sync.Mutex
	Calls        int
}

func (m *MockLedgerService) Register(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &types.RegistrationResult{Success: true, Status: req.Status, PreviousStatus: types.StatusNone, PromotedUserIDs: []int64{}}, nil
}

type MockEventService struct {
	ListEventsForUserFunc func(ctx context.Context, userID int64, includeIneligible bool) ([]types.EventView, error)
	CreateEventFunc       func(ctx context.Context, event types.EventInsert) (*types.Event, error)
	GetRosterFunc         func(ctx context.Context, eventID int64) ([]types.Registration, error)
}

func (m *MockEventService) ListEventsForUser(ctx context.Context, userID int64, includeIneligible bool) ([]types.EventView, error) {
	if m.ListEventsForUserFunc != nil {
		return m.ListEventsForUserFunc(ctx, userID, includeIneligible)
	}
	return []types.EventView{}, nil
}

func (m *MockEventService) CreateEvent(ctx context.Context, event types.EventInsert) (*types.Event, error) {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, event)
	}
	return &types.Event{
		ID:            1,
		Title:         event.Title,
		StartTime:     event.StartTime,
		EndTime:       event.EndTime,
		LevelRequired: event.LevelRequired,
		Capacity:      event.Capacity,
	}, nil
}

func (m *MockEventService) GetRoster(ctx context.Context, eventID int64) ([]types.Registration, error) {
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(ctx, eventID)
	}
	return []types.Registration{}, nil
}

type MockAuthService struct {
	MemberLoginFunc     func(ctx context.Context, lastName, membershipNumber string) (*types.User, error)
	AdminLoginFunc      func(ctx context.Context, email, password string) (*types.AdminSession, error)
	ParseAdminTokenFunc func(token string) (string, error)
}

func (m *MockAuthService) MemberLogin(ctx context.Context, lastName, membershipNumber string) (*types.User, error) {
	if m.MemberLoginFunc != nil {
		return m.MemberLoginFunc(ctx, lastName, membershipNumber)
	}
	return nil, types.ErrAuthentication
}

func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*types.AdminSession, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, email, password)
	}
	return nil, types.ErrAuthentication
}

func (m *MockAuthService) ParseAdminToken(token string) (string, error) {
	if m.ParseAdminTokenFunc != nil {
		return m.ParseAdminTokenFunc(token)
	}
	return "", types.ErrAuthentication
}

type MockSeedService struct {
	SeedFunc func(ctx context.Context) error
}

func (m *MockSeedService) Seed(ctx context.Context) error {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx)
	}
	return nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockPublisher records every change it is handed.
type MockPublisher struct {
	PublishFunc func(ctx context.Context, change types.RegistrationChange) error
	mu          sync.Mutex
	Changes     []types.RegistrationChange
	Closed      bool
}

func (m *MockPublisher) PublishRegistrationChange(ctx context.Context, change types.RegistrationChange) error {
	m.mu.Lock()
	m.Changes = append(m.Changes, change)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, change)
	}
	return nil
}

func (m *MockPublisher) Close() error {
	m.Closed = true
	return nil
}

// Published returns a copy of the recorded changes.
func (m *MockPublisher) Published() []types.RegistrationChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.RegistrationChange(nil), m.Changes...)
}

type MockUserStore struct {
	GetUserByIDFunc           func(ctx context.Context, id int64) (*types.User, error)
	FindUserByCredentialsFunc func(ctx context.Context, lastName, membershipNumber string) (*types.User, error)
	UpsertUserFunc            func(ctx context.Context, user types.UserInsert) (*types.User, error)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, types.ErrNotFound
}

func (m *MockUserStore) FindUserByCredentials(ctx context.Context, lastName, membershipNumber string) (*types.User, error) {
	if m.FindUserByCredentialsFunc != nil {
		return m.FindUserByCredentialsFunc(ctx, lastName, membershipNumber)
	}
	return nil, types.ErrNotFound
}

func (m *MockUserStore) UpsertUser(ctx context.Context, user types.UserInsert) (*types.User, error) {
	if m.UpsertUserFunc != nil {
		return m.UpsertUserFunc(ctx, user)
	}
	return &types.User{ID: 1, LastName: user.LastName, MembershipNumber: user.MembershipNumber, TennisCompetencyLevel: user.TennisCompetencyLevel}, nil
}

type MockAdminStore struct {
	GetAdminByEmailFunc func(ctx context.Context, email string) (*types.Admin, error)
	UpsertAdminFunc     func(ctx context.Context, email, passwordHash string) (*types.Admin, error)
}

func (m *MockAdminStore) GetAdminByEmail(ctx context.Context, email string) (*types.Admin, error) {
	if m.GetAdminByEmailFunc != nil {
		return m.GetAdminByEmailFunc(ctx, email)
	}
	return nil, types.ErrNotFound
}

func (m *MockAdminStore) UpsertAdmin(ctx context.Context, email, passwordHash string) (*types.Admin, error) {
	if m.UpsertAdminFunc != nil {
		return m.UpsertAdminFunc(ctx, email, passwordHash)
	}
	return &types.Admin{ID: 1, Email: email, PasswordHash: passwordHash}, nil
}

type MockEventStore struct {
	InsertEventFunc                func(ctx context.Context, event types.EventInsert) (*types.Event, error)
	GetEventByIDFunc               func(ctx context.Context, id int64) (*types.Event, error)
	ListEventViewsFunc             func(ctx context.Context, userID int64) ([]types.EventView, error)
	ListRegistrationsByEventIDFunc func(ctx context.Context, eventID int64) ([]types.Registration, error)
}

func (m *MockEventStore) InsertEvent(ctx context.Context, event types.EventInsert) (*types.Event, error) {
	if m.InsertEventFunc != nil {
		return m.InsertEventFunc(ctx, event)
	}
	return &types.Event{ID: 1, Title: event.Title, StartTime: event.StartTime, EndTime: event.EndTime, LevelRequired: event.LevelRequired, Capacity: event.Capacity}, nil
}

func (m *MockEventStore) GetEventByID(ctx context.Context, id int64) (*types.Event, error) {
	if m.GetEventByIDFunc != nil {
		return m.GetEventByIDFunc(ctx, id)
	}
	return nil, types.ErrNotFound
}

func (m *MockEventStore) ListEventViews(ctx context.Context, userID int64) ([]types.EventView, error) {
	if m.ListEventViewsFunc != nil {
		return m.ListEventViewsFunc(ctx, userID)
	}
	return []types.EventView{}, nil
}

func (m *MockEventStore) ListRegistrationsByEventID(ctx context.Context, eventID int64) ([]types.Registration, error) {
	if m.ListRegistrationsByEventIDFunc != nil {
		return m.ListRegistrationsByEventIDFunc(ctx, eventID)
	}
	return []types.Registration{}, nil
}
