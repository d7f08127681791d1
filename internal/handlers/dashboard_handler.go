package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pedroriq/sissuporte/internal/httperr"
	ucRelatorio "github.com/pedroriq/sissuporte/internal/usecase/relatorio"
)

type DashboardHandler struct {
	statsUC *ucRelatorio.DashboardStats
	log     zerolog.Logger
}

func NewDashboardHandler(statsUC *ucRelatorio.DashboardStats, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC, log: log}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard stats failed")
		httperr.Internal(c, "failed_to_load_stats", "Erro ao carregar estatísticas")
		return
	}

	c.JSON(http.StatusOK, stats)
}
