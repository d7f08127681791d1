package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
	ucSuporte "github.com/pedroriq/sissuporte/internal/usecase/suporte"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende o formulário anônimo de solicitação. São as
// únicas rotas fora do login que não exigem token.
type PublicHandler struct {
	db       *gorm.DB
	submitUC *ucSuporte.SubmitPublicRequest
	log      zerolog.Logger
}

func NewPublicHandler(db *gorm.DB, submitUC *ucSuporte.SubmitPublicRequest, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{db: db, submitUC: submitUC, log: log}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// A solicitação pública não tem campo de status nem de técnico;
// valores extras no payload são descartados no parse.
type PublicSolicitacaoRequest struct {
	ClienteID               uint   `json:"cliente_id" binding:"required"`
	SolicitanteNome         string `json:"solicitante_nome" binding:"required"`
	SolicitanteEmail        string `json:"solicitante_email"`
	SolicitanteDepartamento string `json:"solicitante_departamento"`
	Tipo                    string `json:"tipo"`
	Descricao               string `json:"descricao" binding:"required"`
	PrintURL                string `json:"print_url"`
	PrintBase64             string `json:"print_base64"`
}

////////////////////////////////////////////////////////
// Cliente por slug
////////////////////////////////////////////////////////

// GetClienteBySlug resolve a página pública. Um 404 seco na falta:
// nada além disso vaza sobre a existência do cliente.
func (h *PublicHandler) GetClienteBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var cliente models.Client
	if err := h.db.Where("url_slug = ?", slug).First(&cliente).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente")
		return
	}

	c.JSON(http.StatusOK, cliente)
}

////////////////////////////////////////////////////////
// Solicitação pública
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateSolicitacao(c *gin.Context) {
	var req PublicSolicitacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	t, err := h.submitUC.Execute(c.Request.Context(), ucSuporte.SubmitPublicRequestInput{
		ClienteID:               req.ClienteID,
		SolicitanteNome:         req.SolicitanteNome,
		SolicitanteEmail:        req.SolicitanteEmail,
		SolicitanteDepartamento: req.SolicitanteDepartamento,
		Tipo:                    req.Tipo,
		Descricao:               req.Descricao,
		PrintURL:                req.PrintURL,
		PrintBase64:             req.PrintBase64,
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}
		h.log.Error().Err(err).Msg("public request failed")
		httperr.Internal(c, "failed_to_create_request", "Erro ao criar solicitação")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": t.ID, "success": true})
}
