package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
)

type UserHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewUserHandler(db *gorm.DB, log zerolog.Logger) *UserHandler {
	return &UserHandler{db: db, log: log}
}

// --------- Requests ---------

type RegisterUserRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	SenhaAtual string `json:"senha_atual" binding:"required"`
	NovaSenha  string `json:"nova_senha" binding:"required,min=6"`
}

// --------- Handlers ---------

// Register cria um técnico. O papel nunca vem do payload.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		h.log.Error().Err(err).Msg("user email lookup failed")
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, httperr.CodeEmailAlreadyExists, "E-mail já cadastrado")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error().Err(err).Msg("password hash failed")
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário")
		return
	}

	user := models.User{
		Name:      req.Nome,
		Email:     email,
		SenhaHash: string(hashed),
		Role:      "tecnico",
	}

	if err := h.db.Create(&user).Error; err != nil {
		h.log.Error().Err(err).Msg("user insert failed")
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           user.ID,
		"nome":         user.Name,
		"email":        user.Email,
		"tipo_usuario": user.Role,
	})
}

// UpdateProfile sobrescreve nome e e-mail; não exige reautenticação.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Usuário não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, user.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar perfil")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, httperr.CodeEmailAlreadyExists, "E-mail já cadastrado")
		return
	}

	user.Name = req.Nome
	user.Email = email

	if err := h.db.Save(&user).Error; err != nil {
		h.log.Error().Err(err).Msg("profile update failed")
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar perfil")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"nome":         user.Name,
		"email":        user.Email,
		"tipo_usuario": user.Role,
	})
}

// ChangePassword reconfere a senha atual antes de trocar.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Usuário não encontrado")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.SenhaAtual)); err != nil {
		httperr.BadRequest(c, httperr.CodeWrongCurrentPassword, "Senha atual incorreta")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_change_password", "Erro ao alterar senha")
		return
	}

	user.SenhaHash = string(hashed)
	if err := h.db.Save(&user).Error; err != nil {
		h.log.Error().Err(err).Msg("password change failed")
		httperr.Internal(c, "failed_to_change_password", "Erro ao alterar senha")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
