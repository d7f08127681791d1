package models

import "time"

// Cliente atendido pelo suporte; o slug identifica a página pública
// de solicitação.
type Client struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"column:nome;size:255;not null" json:"nome"`
	CNPJ         *string  `gorm:"column:cnpj;size:18" json:"cnpj"`
	ContactName  *string  `gorm:"column:contato_nome;size:255" json:"contato_nome"`
	ContactEmail *string  `gorm:"column:contato_email;size:255" json:"contato_email"`
	ContactPhone *string  `gorm:"column:contato_telefone;size:20" json:"contato_telefone"`
	Notes        *string  `gorm:"column:observacoes;type:text" json:"observacoes"`
	MonthlyFee   *float64 `gorm:"column:valor_mensalidade;type:decimal(10,2)" json:"valor_mensalidade"`
	Slug         *string  `gorm:"column:url_slug;size:100;uniqueIndex" json:"url_slug"`

	CreatedAt time.Time `gorm:"column:criado_em" json:"criado_em"`
}

func (Client) TableName() string { return "clientes" }
