package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	"github.com/pedroriq/sissuporte/internal/config"
	"github.com/pedroriq/sissuporte/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Banco em memória único por teste, com FKs ligadas para o cascade
	// funcionar como no Postgres.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.ManagedEmail{},
		&models.Ticket{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		Timezone:  "UTC",
	}
}

func testAudit(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db), zerolog.Nop())
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(t *testing.T, r *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// waitForAudit espera o worker assíncrono gravar o evento.
func waitForAudit(t *testing.T, db *gorm.DB, action string) models.AuditLog {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var entry models.AuditLog
		if err := db.Where("action = ?", action).First(&entry).Error; err == nil {
			return entry
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("audit event %q never written", action)
	return models.AuditLog{}
}

func seedUser(t *testing.T, db *gorm.DB, nome, email, senha, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Name: nome, Email: email, SenhaHash: string(hash), Role: role}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedClient(t *testing.T, db *gorm.DB, nome, slug string) models.Client {
	t.Helper()
	c := models.Client{Name: nome}
	if slug != "" {
		c.Slug = &slug
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}
