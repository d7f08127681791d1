package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/mailcsv"
	"github.com/pedroriq/sissuporte/internal/models"
)

type EmailHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewEmailHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, log zerolog.Logger) *EmailHandler {
	return &EmailHandler{db: db, audit: auditDispatcher, log: log}
}

// --------- Requests ---------

type CreateEmailRequest struct {
	ClienteID    uint    `json:"cliente_id" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Usuario      *string `json:"usuario"`
	Cargo        *string `json:"cargo"`
	Departamento *string `json:"departamento"`
	Objetivo     *string `json:"objetivo"`
	EmUso        *bool   `json:"em_uso"`
}

type UpdateEmailRequest struct {
	Email        *string `json:"email,omitempty"`
	Usuario      *string `json:"usuario,omitempty"`
	Cargo        *string `json:"cargo,omitempty"`
	Departamento *string `json:"departamento,omitempty"`
	Objetivo     *string `json:"objetivo,omitempty"`
	EmUso        *bool   `json:"em_uso,omitempty"`
}

// --------- Handlers ---------

func (h *EmailHandler) ListByClient(c *gin.Context) {
	clienteID := c.Param("id")

	var emails []models.ManagedEmail
	if err := h.db.
		Where("cliente_id = ?", clienteID).
		Order("email ASC").
		Find(&emails).Error; err != nil {
		h.log.Error().Err(err).Msg("email list failed")
		httperr.Internal(c, "failed_to_list_emails", "Erro ao carregar e-mails")
		return
	}

	c.JSON(http.StatusOK, emails)
}

func (h *EmailHandler) Create(c *gin.Context) {
	var req CreateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	var cliente models.Client
	if err := h.db.First(&cliente, req.ClienteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_create_email", "Erro ao criar e-mail")
		return
	}

	emUso := true
	if req.EmUso != nil {
		emUso = *req.EmUso
	}

	email := models.ManagedEmail{
		ClientID:   req.ClienteID,
		Email:      req.Email,
		Usuario:    req.Usuario,
		Cargo:      req.Cargo,
		Department: req.Departamento,
		Purpose:    req.Objetivo,
		InUse:      emUso,
	}

	if err := h.db.Create(&email).Error; err != nil {
		h.log.Error().Err(err).Msg("email insert failed")
		httperr.Internal(c, "failed_to_create_email", "Erro ao criar e-mail")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "email_created",
		Entity:   "email",
		EntityID: &email.ID,
	})

	c.JSON(http.StatusCreated, email)
}

func (h *EmailHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var email models.ManagedEmail
	if err := h.db.First(&email, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "E-mail não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_email", "Erro ao carregar e-mail")
		return
	}

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Email != nil {
		email.Email = *req.Email
	}
	if req.Usuario != nil {
		email.Usuario = req.Usuario
	}
	if req.Cargo != nil {
		email.Cargo = req.Cargo
	}
	if req.Departamento != nil {
		email.Department = req.Departamento
	}
	if req.Objetivo != nil {
		email.Purpose = req.Objetivo
	}
	if req.EmUso != nil {
		email.InUse = *req.EmUso
	}

	if err := h.db.Save(&email).Error; err != nil {
		h.log.Error().Err(err).Msg("email update failed")
		httperr.Internal(c, "failed_to_update_email", "Erro ao atualizar e-mail")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "email_updated",
		Entity:   "email",
		EntityID: &email.ID,
	})

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var email models.ManagedEmail
	if err := h.db.First(&email, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "E-mail não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_email", "Erro ao carregar e-mail")
		return
	}

	if err := h.db.Delete(&email).Error; err != nil {
		h.log.Error().Err(err).Msg("email delete failed")
		httperr.Internal(c, "failed_to_delete_email", "Erro ao excluir e-mail")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "email_deleted",
		Entity:   "email",
		EntityID: &email.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportCSV baixa os e-mails do cliente no formato das planilhas.
func (h *EmailHandler) ExportCSV(c *gin.Context) {
	clienteID := c.Param("id")

	var cliente models.Client
	if err := h.db.First(&cliente, "id = ?", clienteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_export_emails", "Erro ao exportar e-mails")
		return
	}

	var emails []models.ManagedEmail
	if err := h.db.
		Where("cliente_id = ?", cliente.ID).
		Order("email ASC").
		Find(&emails).Error; err != nil {
		httperr.Internal(c, "failed_to_export_emails", "Erro ao exportar e-mails")
		return
	}

	data, err := mailcsv.Marshal(emails)
	if err != nil {
		h.log.Error().Err(err).Msg("csv marshal failed")
		httperr.Internal(c, "failed_to_export_emails", "Erro ao exportar e-mails")
		return
	}

	filename := fmt.Sprintf("%s_emails.csv", cliente.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ImportCSV insere cada linha de forma independente e segue adiante
// nas falhas. Melhor esforço de propósito: sucesso parcial é esperado
// e reportado, nunca desfeito.
func (h *EmailHandler) ImportCSV(c *gin.Context) {
	clienteID := c.Param("id")

	var cliente models.Client
	if err := h.db.First(&cliente, "id = ?", clienteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_import_emails", "Erro ao importar e-mails")
		return
	}

	records, err := mailcsv.Parse(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_csv", "Arquivo CSV inválido. Cabeçalhos esperados: Email, Usuário, Cargo, Departamento, Objetivo, Em Uso")
		return
	}

	if len(records) == 0 {
		httperr.BadRequest(c, "empty_csv", "Nenhum e-mail válido encontrado no arquivo.")
		return
	}

	importados := 0
	falhas := 0

	for _, rec := range records {
		optional := func(s string) *string {
			if s == "" {
				return nil
			}
			v := s
			return &v
		}

		email := models.ManagedEmail{
			ClientID:   cliente.ID,
			Email:      rec.Email,
			Usuario:    optional(rec.Usuario),
			Cargo:      optional(rec.Cargo),
			Department: optional(rec.Departamento),
			Purpose:    optional(rec.Objetivo),
			InUse:      rec.EmUso,
		}

		if err := h.db.Create(&email).Error; err != nil {
			h.log.Warn().Err(err).Str("email", rec.Email).Msg("import row failed")
			falhas++
			continue
		}
		importados++
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "emails_imported",
		Entity:   "cliente",
		EntityID: &cliente.ID,
		Metadata: gin.H{"importados": importados, "falhas": falhas},
	})

	c.JSON(http.StatusOK, gin.H{
		"importados": importados,
		"falhas":     falhas,
	})
}
