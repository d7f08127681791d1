package dto

import "time"

// SuporteListDTO é o chamado já juntado com o nome do cliente, como a
// listagem e o relatório consomem.
type SuporteListDTO struct {
	ID                      uint      `json:"id"`
	ClienteID               uint      `json:"cliente_id"`
	ClienteNome             string    `json:"cliente_nome"`
	Tecnico                 *string   `json:"tecnico"`
	Tipo                    string    `json:"tipo"`
	Descricao               string    `json:"descricao"`
	PrintURL                *string   `json:"print_url"`
	DataSuporte             time.Time `json:"data_suporte"`
	TempoGasto              *int      `json:"tempo_gasto"`
	SolicitanteNome         *string   `json:"solicitante_nome"`
	SolicitanteEmail        *string   `json:"solicitante_email"`
	SolicitanteDepartamento *string   `json:"solicitante_departamento"`
	Status                  string    `json:"status"`
}

type TipoCount struct {
	Tipo  string `json:"tipo"`
	Total int64  `json:"total"`
}

type DashboardStats struct {
	TotalClientes  int64       `json:"totalClientes"`
	SuportesMes    int64       `json:"suportesMes"`
	ClientesAtivos int64       `json:"clientesAtivos"`
	TiposSuporte   []TipoCount `json:"tiposSuporte"`
}
