package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/pedroriq/sissuporte/internal/domain/suporte"
	"github.com/pedroriq/sissuporte/internal/dto"
	"github.com/pedroriq/sissuporte/internal/models"
)

type SuporteGormRepository struct {
	db *gorm.DB
}

func NewSuporteGormRepository(db *gorm.DB) *SuporteGormRepository {
	return &SuporteGormRepository{db: db}
}

const listColumns = `suportes.id, suportes.cliente_id, clientes.nome AS cliente_nome,
	suportes.tecnico, suportes.tipo, suportes.descricao, suportes.print_url,
	suportes.data_suporte, suportes.tempo_gasto, suportes.solicitante_nome,
	suportes.solicitante_email, suportes.solicitante_departamento, suportes.status`

// --------------------------------------------------
// Cliente
// --------------------------------------------------

func (r *SuporteGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Suporte
// --------------------------------------------------

func (r *SuporteGormRepository) CreateTicket(
	ctx context.Context,
	t *models.Ticket,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *SuporteGormRepository) ListTickets(
	ctx context.Context,
) ([]dto.SuporteListDTO, error) {

	var out []dto.SuporteListDTO
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Select(listColumns).
		Joins("LEFT JOIN clientes ON clientes.id = suportes.cliente_id").
		Order("suportes.data_suporte DESC").
		Scan(&out).Error

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SuporteGormRepository) ListTicketsFiltered(
	ctx context.Context,
	filters domain.ReportFilters,
) ([]dto.SuporteListDTO, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Select(listColumns).
		Joins("LEFT JOIN clientes ON clientes.id = suportes.cliente_id")

	if filters.DateStart != nil {
		q = q.Where("suportes.data_suporte >= ?", *filters.DateStart)
	}
	if filters.DateEnd != nil {
		q = q.Where("suportes.data_suporte < ?", *filters.DateEnd)
	}
	if filters.ClienteID != nil {
		q = q.Where("suportes.cliente_id = ?", *filters.ClienteID)
	}
	if filters.Tipo != "" {
		q = q.Where("suportes.tipo = ?", filters.Tipo)
	}
	if filters.Status != "" {
		q = q.Where("suportes.status = ?", filters.Status)
	}

	var out []dto.SuporteListDTO
	if err := q.Order("suportes.data_suporte DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Agregados do dashboard
// --------------------------------------------------

func (r *SuporteGormRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SuporteGormRepository) CountTicketsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("data_suporte >= ? AND data_suporte < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SuporteGormRepository) CountActiveClientsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("data_suporte >= ? AND data_suporte < ?", start, end).
		Distinct("cliente_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SuporteGormRepository) TypeHistogram(ctx context.Context) ([]dto.TipoCount, error) {
	var out []dto.TipoCount
	if err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Select("tipo, COUNT(*) AS total").
		Group("tipo").
		Order("total DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*SuporteGormRepository)(nil)
