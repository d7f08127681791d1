package suporte

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pedroriq/sissuporte/internal/audit"
	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
	"github.com/pedroriq/sissuporte/internal/storage"
	"github.com/pedroriq/sissuporte/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateTicketInput struct {
	ClienteID   uint
	Tecnico     string
	Tipo        string
	Descricao   string
	Status      string
	TempoGasto  *int
	PrintURL    string
	PrintBase64 string

	UserID *uint // técnico autenticado, para auditoria
}

// ======================================================
// USE CASE
// ======================================================

type CreateTicket struct {
	repo     domain.Repository
	uploader storage.Uploader
	audit    *audit.Dispatcher
	log      zerolog.Logger
	tz       string
}

func NewCreateTicket(
	repo domain.Repository,
	uploader storage.Uploader,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
	tz string,
) *CreateTicket {
	return &CreateTicket{
		repo:     repo,
		uploader: uploader,
		audit:    auditDispatcher,
		log:      log,
		tz:       tz,
	}
}

func (uc *CreateTicket) Execute(
	ctx context.Context,
	in CreateTicketInput,
) (*models.Ticket, error) {

	if _, err := uc.repo.GetClientByID(ctx, in.ClienteID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	status := in.Status
	if !domain.IsValidStatus(status) {
		status = string(domain.InitialStatus())
	}

	printURL := resolvePrintURL(ctx, uc.uploader, uc.log, in.PrintURL, in.PrintBase64)

	t := &models.Ticket{
		ClientID:    in.ClienteID,
		Tipo:        in.Tipo,
		Description: in.Descricao,
		PrintURL:    printURL,
		DataSuporte: timezone.NowIn(uc.tz),
		TempoGasto:  in.TempoGasto,
		Status:      status,
	}
	if in.Tecnico != "" {
		t.Tecnico = &in.Tecnico
	}

	if err := uc.repo.CreateTicket(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "suporte_created",
		Entity:   "suporte",
		EntityID: &t.ID,
	})

	return t, nil
}
