package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gatherly/internal/bookings"
	"gatherly/internal/categories"
	"gatherly/internal/events"
	"gatherly/internal/shared/config"
	"gatherly/internal/shared/database"
	"gatherly/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB

	admin      *users.User
	customers  []*users.User
	categories []*categories.Category
	events     []*events.Event
}

func main() {
	fmt.Println("Starting Gatherly database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order so foreign
// keys never block the delete.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"events",
		"categories",
		"users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	if err := s.seedBookings(); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.admin = &users.User{
		Name:     "Admin",
		Email:    "admin@gatherly.local",
		Password: string(hash),
		Role:     users.RoleAdmin,
	}
	if err := s.db.GetPostgreSQL().Create(s.admin).Error; err != nil {
		return err
	}

	names := []string{"Alice Carter", "Ben Osei", "Carla Mendes", "Dmitri Volkov", "Emi Tanaka"}
	for i, name := range names {
		user := &users.User{
			Name:     name,
			Email:    fmt.Sprintf("user%d@gatherly.local", i+1),
			Password: string(hash),
			Role:     users.RoleUser,
		}
		if err := s.db.GetPostgreSQL().Create(user).Error; err != nil {
			return err
		}
		s.customers = append(s.customers, user)
	}

	fmt.Printf("  seeded %d users (1 admin)\n", len(s.customers)+1)
	return nil
}

func (s *Seeder) seedCategories() error {
	for _, spec := range []struct {
		name, description string
	}{
		{"Music", "Concerts, festivals and live performances"},
		{"Technology", "Conferences, meetups and hackathons"},
		{"Sports", "Matches, races and tournaments"},
		{"Theatre", "Plays, musicals and stand-up comedy"},
	} {
		category := &categories.Category{
			Name:        spec.name,
			Description: spec.description,
			CreatedBy:   s.admin.ID,
		}
		if err := s.db.GetPostgreSQL().Create(category).Error; err != nil {
			return err
		}
		s.categories = append(s.categories, category)
	}

	fmt.Printf("  seeded %d categories\n", len(s.categories))
	return nil
}

func (s *Seeder) seedEvents() error {
	base := time.Now().AddDate(0, 1, 0)

	for i, spec := range []struct {
		title    string
		location string
		category int
		capacity int
		price    float64
	}{
		{"Riverside Jazz Festival", "Harbor Park", 0, 500, 85},
		{"Go Systems Conference", "Convention Center", 1, 300, 240},
		{"City Marathon Finish Party", "Main Square", 2, 1000, 15},
		{"A Midsummer Night's Dream", "Grand Theatre", 3, 120, 60},
		{"Synthwave Open Air", "Old Factory Grounds", 0, 800, 45},
	} {
		event := &events.Event{
			Title:          spec.title,
			Description:    fmt.Sprintf("%s at %s.", spec.title, spec.location),
			Location:       spec.location,
			EventDate:      base.AddDate(0, 0, i*7),
			CategoryID:     &s.categories[spec.category].ID,
			Capacity:       spec.capacity,
			AvailableSeats: spec.capacity,
			Price:          spec.price,
			IsActive:       true,
			CreatedBy:      s.admin.ID,
		}
		if err := s.db.GetPostgreSQL().Create(event).Error; err != nil {
			return err
		}
		s.events = append(s.events, event)
	}

	fmt.Printf("  seeded %d events\n", len(s.events))
	return nil
}

// seedBookings goes through the real reservation path so seeded seat counts
// stay consistent with the booking rows.
func (s *Seeder) seedBookings() error {
	repo := bookings.NewRepository(s.db.GetPostgreSQL(), bookings.NewAllocator())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for i, customer := range s.customers {
		event := s.events[i%len(s.events)]
		booking := &bookings.Booking{
			UserID:     customer.ID,
			EventID:    event.ID,
			NumTickets: (i % 3) + 1,
			Status:     bookings.StatusConfirmed,
		}
		if _, err := repo.CreateWithReservation(ctx, booking); err != nil {
			return fmt.Errorf("booking for %s: %w", customer.Email, err)
		}
		seeded++
	}

	// One cancelled booking so list filters have something to show
	cancelledBooking := &bookings.Booking{
		UserID:     s.customers[0].ID,
		EventID:    s.events[1].ID,
		NumTickets: 2,
		Status:     bookings.StatusConfirmed,
	}
	if _, err := repo.CreateWithReservation(ctx, cancelledBooking); err != nil {
		return err
	}
	if _, _, err := repo.CancelWithRelease(ctx, cancelledBooking.ID, s.customers[0].ID, false); err != nil {
		return err
	}
	seeded++

	fmt.Printf("  seeded %d bookings (1 cancelled)\n", seeded)
	return nil
}
