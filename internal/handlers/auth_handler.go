package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/config"
	"github.com/yung988/eliceli-salon/internal/httperr"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// ======================================================
// DTOs
// ======================================================

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	Admin AdminBrief `json:"admin"`
}

type AdminBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ======================================================
// LOGIN
// ======================================================

// Login ověří e-mail + heslo proti admin_users a vydá JWT na 24 hodin.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "E-mail a heslo jsou povinné.")
		return
	}

	var admin models.AdminUser
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&admin).Error
	if err != nil {
		// stejná odpověď pro neznámý e-mail i špatné heslo
		httperr.Unauthorized(c, "invalid_credentials", "Neplatné přihlašovací údaje.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Neplatné přihlašovací údaje.")
		return
	}

	token, err := h.issueToken(admin.ID)
	if err != nil {
		httperr.Internal(c, "token_failed", "Přihlášení se nezdařilo.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Admin: AdminBrief{ID: admin.ID, Name: admin.Name, Email: admin.Email},
	})
}

func (h *AuthHandler) issueToken(adminID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  adminID,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
