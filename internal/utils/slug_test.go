package utils

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/townhub-dev/townhub/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Venue{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestUniqueSlug(t *testing.T) {
	db := newTestDB(t)

	slug, err := UniqueSlug(db, &models.Venue{}, "The Blue Door Café")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slug != "the-blue-door-cafe" {
		t.Errorf("expected the-blue-door-cafe, got %s", slug)
	}
}

func TestUniqueSlugDeduplicates(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	taken := models.Venue{Name: "Cafe", Slug: "cafe", OwnerID: user.ID, Status: "approved"}
	if err := db.Create(&taken).Error; err != nil {
		t.Fatalf("failed to create venue: %v", err)
	}

	slug, err := UniqueSlug(db, &models.Venue{}, "Cafe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slug != "cafe-2" {
		t.Errorf("expected cafe-2, got %s", slug)
	}

	second := models.Venue{Name: "Cafe", Slug: "cafe-2", OwnerID: user.ID, Status: "approved"}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("failed to create venue: %v", err)
	}

	slug, err = UniqueSlug(db, &models.Venue{}, "Cafe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if slug != "cafe-3" {
		t.Errorf("expected cafe-3, got %s", slug)
	}
}

func TestUniqueSlugRejectsEmpty(t *testing.T) {
	db := newTestDB(t)

	if _, err := UniqueSlug(db, &models.Venue{}, "!!!"); err == nil {
		t.Error("expected an error for a title with no slug content")
	}
}
