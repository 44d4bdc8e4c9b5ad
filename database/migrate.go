package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the four tables and their per-hostel unique
// indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.CleaningLog{},
		&models.Issue{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// AdminSeed is one pre-provisioned admin account.
type AdminSeed struct {
	HostelName string
	Username   string
	Password   string
}

// ParseAdminSeeds parses "hostel|username|password" entries separated by ";".
func ParseAdminSeeds(raw string) ([]AdminSeed, error) {
	var seeds []AdminSeed
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid admin seed %q: want hostel|username|password", entry)
		}
		seed := AdminSeed{
			HostelName: strings.TrimSpace(parts[0]),
			Username:   strings.TrimSpace(parts[1]),
			Password:   parts[2],
		}
		if !models.IsValidHostel(seed.HostelName) {
			return nil, fmt.Errorf("invalid admin seed %q: unknown hostel", entry)
		}
		if seed.Username == "" || seed.Password == "" {
			return nil, fmt.Errorf("invalid admin seed %q: username and password are required", entry)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// SeedAdmins creates the admin accounts that do not exist yet. Existing
// accounts are left untouched, passwords included.
func SeedAdmins(ctx context.Context, db *gorm.DB, seeds []AdminSeed) (int, error) {
	created := 0
	for _, seed := range seeds {
		users := repository.ForHostel(db, seed.HostelName).Users()

		_, err := users.FindAdmin(ctx, seed.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return created, err
		}

		hashed, err := utils.HashPassword(seed.Password)
		if err != nil {
			return created, err
		}
		username := seed.Username
		if err := users.Create(ctx, &models.User{
			Username: &username,
			Password: hashed,
			Role:     models.RoleAdmin,
		}); err != nil {
			return created, fmt.Errorf("seed admin %s/%s: %w", seed.HostelName, seed.Username, err)
		}
		utils.InfoLogger.Printf("Seeded admin %s for %s", seed.Username, seed.HostelName)
		created++
	}
	return created, nil
}
