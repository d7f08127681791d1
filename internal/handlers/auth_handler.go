package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pedroriq/sissuporte/internal/audit"
	"github.com/pedroriq/sissuporte/internal/config"
	"github.com/pedroriq/sissuporte/internal/httperr"
	"github.com/pedroriq/sissuporte/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
	log    zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, auditDispatcher *audit.Dispatcher, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: auditDispatcher, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// mesma resposta de senha errada: nada de enumerar e-mails
			httperr.Unauthorized(c, httperr.CodeInvalidCredentials, "Credenciais inválidas")
			return
		}
		h.log.Error().Err(err).Msg("login lookup failed")
		httperr.Internal(c, "login_failed", "Erro ao fazer login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		httperr.Unauthorized(c, httperr.CodeInvalidCredentials, "Credenciais inválidas")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		httperr.Internal(c, "failed_to_generate_token", "Erro ao fazer login")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "login",
		Entity: "usuario",
	})

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"nome":         user.Name,
		"email":        user.Email,
		"cargo":        user.Cargo,
		"tipo_usuario": user.Role,
		"token":        token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
