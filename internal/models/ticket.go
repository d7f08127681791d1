package models

import "time"

type Ticket struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"column:cliente_id;not null" json:"cliente_id"`
	Client   Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Tecnico     *string `gorm:"size:255" json:"tecnico"`
	Tipo        string  `gorm:"size:100" json:"tipo"`
	Description string  `gorm:"column:descricao;type:text" json:"descricao"`
	PrintURL    *string `gorm:"column:print_url;size:500" json:"print_url"`

	DataSuporte time.Time `gorm:"column:data_suporte" json:"data_suporte"`
	TempoGasto  *int      `gorm:"column:tempo_gasto" json:"tempo_gasto"`

	// preenchidos apenas pela solicitação pública
	RequesterName       *string `gorm:"column:solicitante_nome;size:255" json:"solicitante_nome"`
	RequesterEmail      *string `gorm:"column:solicitante_email;size:255" json:"solicitante_email"`
	RequesterDepartment *string `gorm:"column:solicitante_departamento;size:100" json:"solicitante_departamento"`

	Status string `gorm:"size:20;default:'aberto'" json:"status"`
}

func (Ticket) TableName() string { return "suportes" }
