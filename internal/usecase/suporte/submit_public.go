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

// SubmitPublicRequestInput é tudo que a página pública pode mandar.
// Não há campo de status nem de técnico: o caminho anônimo não os
// aceita.
type SubmitPublicRequestInput struct {
	ClienteID               uint
	SolicitanteNome         string
	SolicitanteEmail        string
	SolicitanteDepartamento string
	Tipo                    string
	Descricao               string
	PrintURL                string
	PrintBase64             string
}

type SubmitPublicRequest struct {
	repo     domain.Repository
	uploader storage.Uploader
	audit    *audit.Dispatcher
	log      zerolog.Logger
	tz       string
}

func NewSubmitPublicRequest(
	repo domain.Repository,
	uploader storage.Uploader,
	auditDispatcher *audit.Dispatcher,
	log zerolog.Logger,
	tz string,
) *SubmitPublicRequest {
	return &SubmitPublicRequest{
		repo:     repo,
		uploader: uploader,
		audit:    auditDispatcher,
		log:      log,
		tz:       tz,
	}
}

func (uc *SubmitPublicRequest) Execute(
	ctx context.Context,
	in SubmitPublicRequestInput,
) (*models.Ticket, error) {

	if _, err := uc.repo.GetClientByID(ctx, in.ClienteID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	printURL := resolvePrintURL(ctx, uc.uploader, uc.log, in.PrintURL, in.PrintBase64)

	optional := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	t := &models.Ticket{
		ClientID:            in.ClienteID,
		Tipo:                in.Tipo,
		Description:         in.Descricao,
		PrintURL:            printURL,
		DataSuporte:         timezone.NowIn(uc.tz),
		RequesterName:       optional(in.SolicitanteNome),
		RequesterEmail:      optional(in.SolicitanteEmail),
		RequesterDepartment: optional(in.SolicitanteDepartamento),
		// solicitação pública sempre entra aberta
		Status: string(domain.StatusAberto),
	}

	if err := uc.repo.CreateTicket(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "suporte_solicitado",
		Entity:   "suporte",
		EntityID: &t.ID,
	})

	return t, nil
}
