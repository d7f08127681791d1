package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
	ucSuporte "github.com/pedroriq/sissuporte/internal/usecase/suporte"
)

type SuporteHandler struct {
	db       *gorm.DB
	createUC *ucSuporte.CreateTicket
	listUC   *ucSuporte.ListTickets
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewSuporteHandler(
	db *gorm.DB,
	createUC *ucSuporte.CreateTicket,
	listUC *ucSuporte.ListTickets,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *SuporteHandler {
	return &SuporteHandler{
		db:       db,
		createUC: createUC,
		listUC:   listUC,
		audit:    auditDispatcher,
		log:      log,
	}
}

// --------- Requests ---------

type CreateSuporteRequest struct {
	ClienteID   uint   `json:"cliente_id" binding:"required"`
	Tecnico     string `json:"tecnico"`
	Tipo        string `json:"tipo"`
	Descricao   string `json:"descricao" binding:"required"`
	Status      string `json:"status"`
	TempoGasto  *int   `json:"tempo_gasto"`
	PrintURL    string `json:"print_url"`
	PrintBase64 string `json:"print_base64"`
}

type UpdateSuporteRequest struct {
	Status     *string `json:"status,omitempty"`
	Tecnico    *string `json:"tecnico,omitempty"`
	Tipo       *string `json:"tipo,omitempty"`
	Descricao  *string `json:"descricao,omitempty"`
	TempoGasto *int    `json:"tempo_gasto,omitempty"`
}

// --------- Handlers ---------

func (h *SuporteHandler) List(c *gin.Context) {
	suportes, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("ticket list failed")
		httperr.Internal(c, "failed_to_list_tickets", "Erro ao carregar suportes")
		return
	}

	c.JSON(http.StatusOK, suportes)
}

func (h *SuporteHandler) Create(c *gin.Context) {
	var req CreateSuporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	t, err := h.createUC.Execute(c.Request.Context(), ucSuporte.CreateTicketInput{
		ClienteID:   req.ClienteID,
		Tecnico:     req.Tecnico,
		Tipo:        req.Tipo,
		Descricao:   req.Descricao,
		Status:      req.Status,
		TempoGasto:  req.TempoGasto,
		PrintURL:    req.PrintURL,
		PrintBase64: req.PrintBase64,
		UserID:      userIDFromContext(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		h.log.Error().Err(err).Msg("ticket create failed")
		httperr.Internal(c, "failed_to_create_ticket", "Erro ao criar suporte")
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Update grava qualquer status do conjunto; a transição não é
// validada, o campo é de exibição.
func (h *SuporteHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var t models.Ticket
	if err := h.db.First(&t, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Suporte não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_ticket", "Erro ao carregar suporte")
		return
	}

	var req UpdateSuporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Status != nil {
		if !domain.IsValidStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
		t.Status = *req.Status
	}
	if req.Tecnico != nil {
		t.Tecnico = req.Tecnico
	}
	if req.Tipo != nil {
		t.Tipo = *req.Tipo
	}
	if req.Descricao != nil {
		t.Description = *req.Descricao
	}
	if req.TempoGasto != nil {
		t.TempoGasto = req.TempoGasto
	}

	if err := h.db.Save(&t).Error; err != nil {
		h.log.Error().Err(err).Msg("ticket update failed")
		httperr.Internal(c, "failed_to_update_ticket", "Erro ao atualizar suporte")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "suporte_updated",
		Entity:   "suporte",
		EntityID: &t.ID,
	})

	c.JSON(http.StatusOK, t)
}
