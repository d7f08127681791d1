package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestInitSeedsDefaultAdmin(t *testing.T) {
	db := openTestDB(t)

	if err := Init(db); err != nil {
		t.Fatalf("init: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@sistema.com").First(&admin).Error; err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Name != "Administrador" || admin.Role != "admin" || admin.Cargo != "Administrador" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.SenhaHash), []byte("admin123")); err != nil {
		t.Fatal("seeded password does not verify")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Init(db); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := Init(db); err != nil {
		t.Fatalf("second init: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single admin got %d users", count)
	}
}

func TestInitSkipsSeedWhenUsersExist(t *testing.T) {
	db := openTestDB(t)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&models.User{
		Name:      "Fulano",
		Email:     "fulano@empresa.com",
		SenhaHash: "hash",
		Role:      "tecnico",
	}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := Init(db); err != nil {
		t.Fatalf("init: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@sistema.com").Count(&count)
	if count != 0 {
		t.Fatal("admin should not be seeded when users already exist")
	}
}
