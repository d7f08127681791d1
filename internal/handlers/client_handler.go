package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/middleware"
	"github.com/pedroriq/sissuporte/internal/models"
	"github.com/pedroriq/sissuporte/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewClientHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{db: db, audit: auditDispatcher, log: log}
}

// --------- Requests ---------

type CreateClienteRequest struct {
	Nome             string   `json:"nome" binding:"required"`
	CNPJ             *string  `json:"cnpj"`
	ContatoNome      *string  `json:"contato_nome"`
	ContatoEmail     *string  `json:"contato_email"`
	ContatoTelefone  *string  `json:"contato_telefone"`
	Observacoes      *string  `json:"observacoes"`
	ValorMensalidade *float64 `json:"valor_mensalidade"`
	URLSlug          *string  `json:"url_slug"`
}

type UpdateClienteRequest struct {
	Nome             *string  `json:"nome,omitempty"`
	CNPJ             *string  `json:"cnpj,omitempty"`
	ContatoNome      *string  `json:"contato_nome,omitempty"`
	ContatoEmail     *string  `json:"contato_email,omitempty"`
	ContatoTelefone  *string  `json:"contato_telefone,omitempty"`
	Observacoes      *string  `json:"observacoes,omitempty"`
	ValorMensalidade *float64 `json:"valor_mensalidade,omitempty"`
	URLSlug          *string  `json:"url_slug,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	var clientes []models.Client
	if err := h.db.Order("nome ASC").Find(&clientes).Error; err != nil {
		h.log.Error().Err(err).Msg("client list failed")
		httperr.Internal(c, "failed_to_list_clients", "Erro ao carregar clientes")
		return
	}

	c.JSON(http.StatusOK, clientes)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var cliente models.Client
	if err := h.db.First(&cliente, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente")
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	slug, ok := h.normalizeSlug(c, req.URLSlug)
	if !ok {
		return
	}

	cliente := models.Client{
		Name:         req.Nome,
		CNPJ:         req.CNPJ,
		ContactName:  req.ContatoNome,
		ContactEmail: req.ContatoEmail,
		ContactPhone: req.ContatoTelefone,
		Notes:        req.Observacoes,
		MonthlyFee:   req.ValorMensalidade,
		Slug:         slug,
	}

	if err := h.db.Create(&cliente).Error; err != nil {
		// índice único do slug é o guarda final
		h.log.Error().Err(err).Msg("client insert failed")
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente")
		return
	}

	userID := userIDFromContext(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "cliente_created",
		Entity:   "cliente",
		EntityID: &cliente.ID,
	})

	c.JSON(http.StatusCreated, cliente)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var cliente models.Client
	if err := h.db.First(&cliente, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente")
		return
	}

	var req UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Nome != nil {
		cliente.Name = *req.Nome
	}
	if req.CNPJ != nil {
		cliente.CNPJ = req.CNPJ
	}
	if req.ContatoNome != nil {
		cliente.ContactName = req.ContatoNome
	}
	if req.ContatoEmail != nil {
		cliente.ContactEmail = req.ContatoEmail
	}
	if req.ContatoTelefone != nil {
		cliente.ContactPhone = req.ContatoTelefone
	}
	if req.Observacoes != nil {
		cliente.Notes = req.Observacoes
	}
	if req.ValorMensalidade != nil {
		cliente.MonthlyFee = req.ValorMensalidade
	}
	if req.URLSlug != nil {
		slug, ok := h.normalizeSlugForUpdate(c, *req.URLSlug, cliente.ID)
		if !ok {
			return
		}
		cliente.Slug = slug
	}

	if err := h.db.Save(&cliente).Error; err != nil {
		h.log.Error().Err(err).Msg("client update failed")
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   userIDFromContext(c),
		Action:   "cliente_updated",
		Entity:   "cliente",
		EntityID: &cliente.ID,
	})

	c.JSON(http.StatusOK, cliente)
}

// Delete remove o cliente; e-mails e chamados caem junto via cascade.
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var cliente models.Client
	if err := h.db.First(&cliente, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente")
		return
	}

	if err := h.db.Delete(&cliente).Error; err != nil {
		h.log.Error().Err(err).Msg("client delete failed")
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente")
		return
	}

	userID := userIDFromContext(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "cliente_deleted",
		Entity:   "cliente",
		EntityID: &cliente.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------- Helpers ---------

func (h *ClientHandler) normalizeSlug(c *gin.Context, raw *string) (*string, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}

	slug := validators.NormalizeSlug(*raw)
	if !validators.IsSlugValid(slug) {
		httperr.BadRequest(c, "invalid_slug", "Slug inválido: use letras minúsculas, números e hífens.")
		return nil, false
	}

	var count int64
	if err := h.db.Model(&models.Client{}).Where("url_slug = ?", slug).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente")
		return nil, false
	}
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Slug já está em uso.")
		return nil, false
	}

	return &slug, true
}

func (h *ClientHandler) normalizeSlugForUpdate(c *gin.Context, raw string, clienteID uint) (*string, bool) {
	if raw == "" {
		return nil, true
	}

	slug := validators.NormalizeSlug(raw)
	if !validators.IsSlugValid(slug) {
		httperr.BadRequest(c, "invalid_slug", "Slug inválido: use letras minúsculas, números e hífens.")
		return nil, false
	}

	var count int64
	if err := h.db.Model(&models.Client{}).
		Where("url_slug = ? AND id <> ?", slug, clienteID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente")
		return nil, false
	}
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Slug já está em uso.")
		return nil, false
	}

	return &slug, true
}

// userIDFromContext lê o usuário autenticado quando a rota passou pelo
// middleware; rotas públicas não têm.
func userIDFromContext(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
