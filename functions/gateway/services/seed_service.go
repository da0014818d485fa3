package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// SeedService loads the development fixtures. Every step is idempotent.
type SeedService struct {
	store         types.Store
	adminEmail    string
	adminPassword string
	now           func() time.Time
}

func NewSeedService(store types.Store, adminEmail, adminPassword string) *SeedService {
	return &SeedService{
		store:         store,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		now:           time.Now,
	}
}

var seedMember = types.UserInsert{
	LastName:              "Park",
	FullName:              "Subin Park",
	MembershipNumber:      "12345",
	Gender:                "Male",
	TennisCompetencyLevel: types.LevelIntermediate,
	Status:                "Active",
	Email:                 "subin@example.com",
	Phone:                 "+1 (555) 123-4567",
	MembershipType:        "Premium",
	JoinDate:              "2022-01-15",
	ExpiryDate:            "2024-01-15",
}

// seedEvents are anchored to the first day of next month. Seed skips any
// title already present, so a later run does not add a second batch.
func (s *SeedService) seedEvents() []types.EventInsert {
	now := s.now().UTC()
	anchor := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	at := func(day, hour int) time.Time {
		return anchor.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
	}
	return []types.EventInsert{
		{Title: "Beginner Clinic", StartTime: at(0, 9), EndTime: at(0, 10), LevelRequired: types.LevelBeginner, Capacity: 8},
		{Title: "Intermediate Drills", StartTime: at(1, 18), EndTime: at(1, 20), LevelRequired: types.LevelIntermediate, Capacity: 6},
		{Title: "Advanced Match Play", StartTime: at(2, 18), EndTime: at(2, 21), LevelRequired: types.LevelAdvanced, Capacity: 4},
		{Title: "Club Social Mixer", StartTime: at(5, 14), EndTime: at(5, 17), LevelRequired: types.AllLevels, Capacity: 24},
		{Title: "Saturday Round Robin", StartTime: at(6, 9), EndTime: at(6, 12), LevelRequired: types.AllLevels, Capacity: 2},
	}
}

func (s *SeedService) Seed(ctx context.Context) error {
	user, err := s.store.UpsertUser(ctx, seedMember)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	log.Printf("Seeded user id=%d membership=%s", user.ID, user.MembershipNumber)

	if s.adminPassword == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin seed")
	} else {
		hash, err := HashPassword(s.adminPassword)
		if err != nil {
			return err
		}
		if _, err := s.store.UpsertAdmin(ctx, s.adminEmail, hash); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		log.Printf("Seeded admin %s", s.adminEmail)
	}

	existing, err := s.store.ListEventViews(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	seeded := make(map[string]bool, len(existing))
	for _, view := range existing {
		seeded[view.Title] = true
	}

	for _, event := range s.seedEvents() {
		if seeded[event.Title] {
			continue
		}
		created, err := s.store.InsertEvent(ctx, event)
		if errors.Is(err, types.ErrConstraintViolation) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed event %q: %w", event.Title, err)
		}
		log.Printf("Seeded event id=%d %q", created.ID, created.Title)
	}
	return nil
}
