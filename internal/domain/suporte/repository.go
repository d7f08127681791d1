package suporte

import (
	"context"
	"time"

	"github.com/pedroriq/sissuporte/internal/dto"
	"github.com/pedroriq/sissuporte/internal/models"
)

// ReportFilters restringe o relatório; campos zerados não filtram.
type ReportFilters struct {
	DateStart *time.Time
	DateEnd   *time.Time
	ClienteID *uint
	Tipo      string
	Status    string
}

type Repository interface {
	// -------- Cliente --------
	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Suporte --------
	CreateTicket(
		ctx context.Context,
		t *models.Ticket,
	) error

	ListTickets(
		ctx context.Context,
	) ([]dto.SuporteListDTO, error)

	ListTicketsFiltered(
		ctx context.Context,
		filters ReportFilters,
	) ([]dto.SuporteListDTO, error)

	// -------- Agregados do dashboard --------
	CountClients(ctx context.Context) (int64, error)

	CountTicketsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (int64, error)

	CountActiveClientsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (int64, error)

	TypeHistogram(ctx context.Context) ([]dto.TipoCount, error)
}
