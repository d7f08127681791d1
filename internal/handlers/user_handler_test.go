package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedroriq/sissuporte/internal/models"
)

func TestRegisterCreatesTecnico(t *testing.T) {
	db := setupTestDB(t)
	h := NewUserHandler(db, zerolog.Nop())
	r := newRouter()
	r.POST("/api/usuarios", h.Register)

	w := doJSON(t, r, http.MethodPost, "/api/usuarios", `{"nome":"João","email":"joao@empresa.com","senha":"senha123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		TipoUsuario string `json:"tipo_usuario"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TipoUsuario != "tecnico" {
		t.Fatalf("expected tecnico got %q", resp.TipoUsuario)
	}

	var user models.User
	if err := db.Where("email = ?", "joao@empresa.com").First(&user).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte("senha123")); err != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "João", "joao@empresa.com", "senha123", "tecnico")

	h := NewUserHandler(db, zerolog.Nop())
	r := newRouter()
	r.POST("/api/usuarios", h.Register)

	w := doJSON(t, r, http.MethodPost, "/api/usuarios", `{"nome":"Outro","email":"joao@empresa.com","senha":"senha456"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var resp struct {
		Code string `json:"error_code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "email_already_exists" {
		t.Fatalf("expected email_already_exists got %q", resp.Code)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	db := setupTestDB(t)
	h := NewUserHandler(db, zerolog.Nop())
	r := newRouter()
	r.POST("/api/usuarios", h.Register)

	w := doJSON(t, r, http.MethodPost, "/api/usuarios", `{"nome":"João","email":"joao@empresa.com","senha":"12345"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "Maria", "maria@empresa.com", "antiga1", "tecnico")

	h := NewUserHandler(db, zerolog.Nop())
	r := newRouter()
	r.PUT("/api/usuarios/:id/senha", h.ChangePassword)

	// senha atual errada
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/usuarios/%d/senha", u.ID),
		`{"senha_atual":"errada","nova_senha":"nova123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Code string `json:"error_code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "wrong_current_password" {
		t.Fatalf("expected wrong_current_password got %q", resp.Code)
	}

	// senha atual correta
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/usuarios/%d/senha", u.ID),
		`{"senha_atual":"antiga1","nova_senha":"nova123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.First(&user, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte("nova123")); err != nil {
		t.Fatal("new password not stored")
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	u := seedUser(t, db, "Maria", "maria@empresa.com", "segredo1", "tecnico")
	seedUser(t, db, "João", "joao@empresa.com", "segredo1", "tecnico")

	h := NewUserHandler(db, zerolog.Nop())
	r := newRouter()
	r.PUT("/api/usuarios/:id", h.UpdateProfile)

	// e-mail de outro usuário é recusado
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/usuarios/%d", u.ID),
		`{"nome":"Maria Silva","email":"joao@empresa.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/usuarios/%d", u.ID),
		`{"nome":"Maria Silva","email":"maria.silva@empresa.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.First(&user, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.Name != "Maria Silva" || user.Email != "maria.silva@empresa.com" {
		t.Fatalf("profile not updated: %+v", user)
	}
}
