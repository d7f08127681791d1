package models

import "time"

// Conta de e-mail administrada pela equipe, sempre vinculada a um
// cliente. O mesmo endereço pode aparecer em mais de um registro.
type ManagedEmail struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"column:cliente_id;not null" json:"cliente_id"`
	Client   Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Email      string  `gorm:"size:255;not null" json:"email"`
	Usuario    *string `gorm:"size:255" json:"usuario"`
	Cargo      *string `gorm:"size:100" json:"cargo"`
	Department *string `gorm:"column:departamento;size:100" json:"departamento"`
	Purpose    *string `gorm:"column:objetivo;type:text" json:"objetivo"`
	// sem default no schema: gorm omitiria o false no INSERT e o
	// banco gravaria true; o default fica no handler
	InUse bool `gorm:"column:em_uso" json:"em_uso"`

	CreatedAt time.Time `gorm:"column:criado_em" json:"criado_em"`
}

func (ManagedEmail) TableName() string { return "emails" }
