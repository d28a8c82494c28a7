package config

import (
	"context"
	"log"
)

// OwnerProvisioner creates the owner account when none exists yet
type OwnerProvisioner interface {
	EnsureOwner(ctx context.Context, email, pin, lastName string) (created bool, err error)
}

// Seeder handles startup seeding
type Seeder struct {
	cfg    *Config
	owners OwnerProvisioner
}

// NewSeeder creates a new seeder instance
func NewSeeder(cfg *Config, owners OwnerProvisioner) *Seeder {
	return &Seeder{cfg: cfg, owners: owners}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedOwner(ctx); err != nil {
		log.Printf("⚠️ Owner seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedOwner creates the configured owner account on a fresh database.
// Without SEED_OWNER_EMAIL the owner is created with cmd/createowner instead.
func (s *Seeder) seedOwner(ctx context.Context) error {
	seed := s.cfg.Seed
	if seed.OwnerEmail == "" {
		return nil
	}

	created, err := s.owners.EnsureOwner(ctx, seed.OwnerEmail, seed.OwnerPIN, seed.OwnerLastName)
	if err != nil {
		return err
	}
	if created {
		log.Printf("✅ Owner account created: %s", seed.OwnerEmail)
	}
	return nil
}
