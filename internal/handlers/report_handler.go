package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
	"github.com/pedroriq/sissuporte/internal/report"
	"github.com/pedroriq/sissuporte/internal/timezone"
)

type ReportHandler struct {
	db   *gorm.DB
	repo domain.Repository
	log  zerolog.Logger
	tz   string
}

func NewReportHandler(db *gorm.DB, repo domain.Repository, log zerolog.Logger, tz string) *ReportHandler {
	return &ReportHandler{db: db, repo: repo, log: log, tz: tz}
}

// SuportesPDF gera o relatório filtrado para download.
// Query: data_inicio, data_fim (YYYY-MM-DD), cliente_id, tipo, status.
func (h *ReportHandler) SuportesPDF(c *gin.Context) {
	loc := timezone.Location(h.tz)

	filters := domain.ReportFilters{
		Tipo:   c.Query("tipo"),
		Status: c.Query("status"),
	}
	display := report.Filters{
		Tipo:   filters.Tipo,
		Status: filters.Status,
	}

	if v := c.Query("data_inicio"); v != "" {
		start, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		filters.DateStart = &start
		display.DateStart = &start
	}

	if v := c.Query("data_fim"); v != "" {
		end, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		// data_fim é inclusiva para quem filtra; janela vira semiaberta
		endExclusive := end.AddDate(0, 0, 1)
		filters.DateEnd = &endExclusive
		display.DateEnd = &end
	}

	if v := c.Query("cliente_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Cliente inválido.")
			return
		}

		var cliente models.Client
		if err := h.db.First(&cliente, uint(id)).Error; err != nil {
			httperr.NotFound(c, httperr.CodeNotFound, "Cliente não encontrado")
			return
		}

		clienteID := uint(id)
		filters.ClienteID = &clienteID
		display.Cliente = cliente.Name
	}

	if filters.Status != "" && !domain.IsValidStatus(filters.Status) {
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
		return
	}

	suportes, err := h.repo.ListTicketsFiltered(c.Request.Context(), filters)
	if err != nil {
		h.log.Error().Err(err).Msg("report query failed")
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	pdf, err := report.BuildSuportesPDF(suportes, display)
	if err != nil {
		h.log.Error().Err(err).Msg("report render failed")
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório")
		return
	}

	filename := fmt.Sprintf("relatorio-suportes-%s.pdf", timezone.NowIn(h.tz).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
