package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pedroriq/sissuporte/internal/models"
)

func TestEmailListOrderedByAddress(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	for _, addr := range []string{"zulu@acme.com", "alpha@acme.com"} {
		if err := db.Create(&models.ManagedEmail{ClientID: cliente.ID, Email: addr, InUse: true}).Error; err != nil {
			t.Fatalf("seed email: %v", err)
		}
	}

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.GET("/api/clientes/:id/emails", h.ListByClient)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/clientes/%d/emails", cliente.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var emails []models.ManagedEmail
	if err := json.Unmarshal(w.Body.Bytes(), &emails); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(emails) != 2 || emails[0].Email != "alpha@acme.com" || emails[1].Email != "zulu@acme.com" {
		t.Fatalf("unexpected order: %+v", emails)
	}
}

func TestCreateEmailDefaultsEmUso(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/emails", h.Create)

	body := fmt.Sprintf(`{"cliente_id":%d,"email":"novo@acme.com"}`, cliente.ID)
	w := doJSON(t, r, http.MethodPost, "/api/emails", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var email models.ManagedEmail
	if err := json.Unmarshal(w.Body.Bytes(), &email); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !email.InUse {
		t.Fatal("em_uso should default to true")
	}
}

// em_uso=false precisa chegar ao banco como false; o valor zero não
// pode ser engolido por default de schema.
func TestCreateEmailEmUsoFalsePersisted(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/emails", h.Create)

	body := fmt.Sprintf(`{"cliente_id":%d,"email":"inativo@acme.com","em_uso":false}`, cliente.ID)
	w := doJSON(t, r, http.MethodPost, "/api/emails", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}

	var created models.ManagedEmail
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var reloaded models.ManagedEmail
	if err := db.First(&reloaded, created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.InUse {
		t.Fatal("em_uso=false was persisted as true")
	}
}

func TestEmailMutationsAudited(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/emails", h.Create)
	r.PUT("/api/emails/:id", h.Update)
	r.DELETE("/api/emails/:id", h.Delete)

	body := fmt.Sprintf(`{"cliente_id":%d,"email":"novo@acme.com"}`, cliente.ID)
	w := doJSON(t, r, http.MethodPost, "/api/emails", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d", w.Code)
	}

	var email models.ManagedEmail
	if err := json.Unmarshal(w.Body.Bytes(), &email); err != nil {
		t.Fatalf("decode: %v", err)
	}

	entry := waitForAudit(t, db, "email_created")
	if entry.Entity != "email" || entry.EntityID == nil || *entry.EntityID != email.ID {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/emails/%d", email.ID), `{"em_uso":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d", w.Code)
	}
	waitForAudit(t, db, "email_updated")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/emails/%d", email.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}
	waitForAudit(t, db, "email_deleted")
}

func TestCreateEmailUnknownClient(t *testing.T) {
	db := setupTestDB(t)

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/emails", h.Create)

	w := doJSON(t, r, http.MethodPost, "/api/emails", `{"cliente_id":999,"email":"x@x.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

// Exporta pelo handler, reimporta para outro cliente e confere que os
// registros sobrevivem à viagem de ida e volta.
func TestEmailCSVRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	origem := seedClient(t, db, "Origem", "origem")
	destino := seedClient(t, db, "Destino", "destino")

	usuario := "Fulano"
	departamento := "TI"
	seedEmails := []models.ManagedEmail{
		{ClientID: origem.ID, Email: "a@origem.com", Usuario: &usuario, Department: &departamento, InUse: true},
		{ClientID: origem.ID, Email: "b@origem.com", InUse: false},
	}
	for i := range seedEmails {
		if err := db.Create(&seedEmails[i]).Error; err != nil {
			t.Fatalf("seed email: %v", err)
		}
	}

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.GET("/api/clientes/:id/emails/csv", h.ExportCSV)
	r.POST("/api/clientes/:id/emails/importar", h.ImportCSV)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/clientes/%d/emails/csv", origem.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Origem_emails.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	csvBody := w.Body.String()
	if !strings.HasPrefix(csvBody, "Email,Usuário,Cargo,Departamento,Objetivo,Em Uso") {
		t.Fatalf("unexpected CSV header: %q", csvBody)
	}

	w = doRaw(t, r, http.MethodPost, fmt.Sprintf("/api/clientes/%d/emails/importar", destino.ID), "text/csv", csvBody)
	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Importados int `json:"importados"`
		Falhas     int `json:"falhas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Importados != 2 || resp.Falhas != 0 {
		t.Fatalf("expected 2/0 got %d/%d", resp.Importados, resp.Falhas)
	}

	var imported []models.ManagedEmail
	if err := db.Where("cliente_id = ?", destino.ID).Order("email ASC").Find(&imported).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported rows got %d", len(imported))
	}
	if imported[0].Usuario == nil || *imported[0].Usuario != "Fulano" {
		t.Fatalf("usuario lost in round trip: %+v", imported[0])
	}
	if imported[1].InUse {
		t.Fatal("em_uso=false lost in round trip")
	}
}

func TestImportCSVInvalidHeader(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/clientes/:id/emails/importar", h.ImportCSV)

	w := doRaw(t, r, http.MethodPost, fmt.Sprintf("/api/clientes/%d/emails/importar", cliente.ID),
		"text/csv", "Endereco,Nome\nx@x.com,Fulano\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var resp struct {
		Code string `json:"error_code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "invalid_csv" {
		t.Fatalf("expected invalid_csv got %q", resp.Code)
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/clientes/:id/emails/importar", h.ImportCSV)

	body := "Email,Usuário,Cargo,Departamento,Objetivo,Em Uso\n,Fulano,,,,Sim\n"
	w := doRaw(t, r, http.MethodPost, fmt.Sprintf("/api/clientes/%d/emails/importar", cliente.ID), "text/csv", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"error_code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "empty_csv" {
		t.Fatalf("expected empty_csv got %q", resp.Code)
	}
}

// Uma linha que viola uma constraint não derruba a importação inteira;
// as boas entram e a resposta conta o que falhou.
func TestImportCSVPartialFailure(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	if err := db.Exec("CREATE UNIQUE INDEX idx_emails_cliente_email ON emails(cliente_id, email)").Error; err != nil {
		t.Fatalf("create index: %v", err)
	}
	if err := db.Create(&models.ManagedEmail{ClientID: cliente.ID, Email: "dup@acme.com", InUse: true}).Error; err != nil {
		t.Fatalf("seed email: %v", err)
	}

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.POST("/api/clientes/:id/emails/importar", h.ImportCSV)

	body := "Email,Usuário,Cargo,Departamento,Objetivo,Em Uso\n" +
		"novo1@acme.com,,,,,Sim\n" +
		"dup@acme.com,,,,,Sim\n" +
		"novo2@acme.com,,,,,Não\n"

	w := doRaw(t, r, http.MethodPost, fmt.Sprintf("/api/clientes/%d/emails/importar", cliente.ID), "text/csv", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Importados int `json:"importados"`
		Falhas     int `json:"falhas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Importados != 2 || resp.Falhas != 1 {
		t.Fatalf("expected 2 importados / 1 falha, got %d/%d", resp.Importados, resp.Falhas)
	}

	var total int64
	db.Model(&models.ManagedEmail{}).Where("cliente_id = ?", cliente.ID).Count(&total)
	if total != 3 { // 1 semeado + 2 importados
		t.Fatalf("expected 3 rows got %d", total)
	}
}

func TestUpdateAndDeleteEmail(t *testing.T) {
	db := setupTestDB(t)
	cliente := seedClient(t, db, "Acme", "acme")

	email := models.ManagedEmail{ClientID: cliente.ID, Email: "velho@acme.com", InUse: true}
	if err := db.Create(&email).Error; err != nil {
		t.Fatalf("seed email: %v", err)
	}

	h := NewEmailHandler(db, testAudit(db), zerolog.Nop())
	r := newRouter()
	r.PUT("/api/emails/:id", h.Update)
	r.DELETE("/api/emails/:id", h.Delete)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/emails/%d", email.ID), `{"em_uso":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var updated models.ManagedEmail
	if err := db.First(&updated, email.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.InUse {
		t.Fatal("em_uso should be false after update")
	}
	if updated.Email != "velho@acme.com" {
		t.Fatal("email address should be untouched")
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/emails/%d", email.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}

	var count int64
	db.Model(&models.ManagedEmail{}).Where("id = ?", email.ID).Count(&count)
	if count != 0 {
		t.Fatal("email should be gone")
	}
}
