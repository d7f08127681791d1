package suporte

import (
	"context"

	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/dto"
)

type ListTickets struct {
	repo domain.Repository
}

func NewListTickets(repo domain.Repository) *ListTickets {
	return &ListTickets{repo: repo}
}

// Execute devolve todos os chamados com o nome do cliente, mais
// recentes primeiro.
func (uc *ListTickets) Execute(ctx context.Context) ([]dto.SuporteListDTO, error) {
	return uc.repo.ListTickets(ctx)
}
