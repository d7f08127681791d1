package relatorio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/pedroriq/sissuporte/internal/cache"
	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/dto"
	"github.com/pedroriq/sissuporte/internal/timezone"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

// DashboardStats agrega os contadores do mês corrente no fuso
// configurado. O cache é opcional: sem redis, toda chamada consulta o
// banco.
type DashboardStats struct {
	repo  domain.Repository
	cache cache.Cache
	log   zerolog.Logger
	tz    string
}

func NewDashboardStats(
	repo domain.Repository,
	c cache.Cache,
	log zerolog.Logger,
	tz string,
) *DashboardStats {
	return &DashboardStats{
		repo:  repo,
		cache: c,
		log:   log,
		tz:    tz,
	}
}

func (uc *DashboardStats) Execute(ctx context.Context) (*dto.DashboardStats, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, statsCacheKey); err == nil {
			var stats dto.DashboardStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	// janela semiaberta: o último segundo do mês anterior fica fora
	now := timezone.NowIn(uc.tz)
	start, end := timezone.MonthWindow(now)

	stats, err := uc.compute(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := uc.cache.Set(ctx, statsCacheKey, string(raw), statsCacheTTL); err != nil {
				uc.log.Warn().Err(err).Msg("failed to cache dashboard stats")
			}
		}
	}

	return stats, nil
}

func (uc *DashboardStats) compute(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (*dto.DashboardStats, error) {

	totalClientes, err := uc.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}

	suportesMes, err := uc.repo.CountTicketsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	clientesAtivos, err := uc.repo.CountActiveClientsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	tipos, err := uc.repo.TypeHistogram(ctx)
	if err != nil {
		return nil, err
	}
	if tipos == nil {
		tipos = []dto.TipoCount{}
	}

	return &dto.DashboardStats{
		TotalClientes:  totalClientes,
		SuportesMes:    suportesMes,
		ClientesAtivos: clientesAtivos,
		TiposSuporte:   tipos,
	}, nil
}
