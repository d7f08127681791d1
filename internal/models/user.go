package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;size:255;not null" json:"nome"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	SenhaHash string    `gorm:"column:senha_hash;size:255;not null" json:"-"`
	Cargo     string    `gorm:"size:100" json:"cargo"`
	Role      string    `gorm:"column:tipo_usuario;size:20;default:'tecnico'" json:"tipo_usuario"`
	CreatedAt time.Time `gorm:"column:criado_em" json:"criado_em"`
}

func (User) TableName() string { return "usuarios" }
