package db

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/config"
	"github.com/pedroriq/sissuporte/internal/models"
)

// NewDB abre a conexão, garante o schema e roda o seed antes do
// servidor começar a aceitar tráfego.
func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Init(db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	return db
}

// Init cria as tabelas que faltam e semeia o administrador padrão.
// Idempotente: seguro de repetir, inclusive em processos concorrentes.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.ManagedEmail{},
		&models.Ticket{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:      "Administrador",
		Email:     "admin@sistema.com",
		SenhaHash: string(hash),
		Cargo:     "Administrador",
		Role:      "admin",
	}

	return db.Create(&admin).Error
}
