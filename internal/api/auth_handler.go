package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"candidate-management-db/internal/auth"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var in model.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	account, ok := h.buildAccount(c, in, model.RoleUser)
	if !ok {
		return
	}

	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this email already exists"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to create account")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data":    account,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	account, err := h.accounts.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to load account")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if !auth.CheckPassword(account.PasswordHash, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    account,
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	account, err := h.accounts.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account found with this email"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to load account")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	token, tokenHash, err := auth.NewResetToken()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate reset token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	expires := time.Now().Add(auth.ResetTokenTTL)
	if err := h.accounts.SetResetToken(c.Request.Context(), account.ID, tokenHash, expires); err != nil {
		h.log.Error().Err(err).Int64("account_id", account.ID).Msg("Failed to store reset token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := h.mailer.SendPasswordReset(c.Request.Context(), account.Email, token); err != nil {
		h.log.Error().Err(err).Str("email", account.Email).Msg("Failed to send reset email")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset email sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var in struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if len(in.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
		return
	}

	account, err := h.accounts.GetByResetTokenHash(c.Request.Context(), auth.HashToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reset token is invalid or has expired"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to look up reset token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := h.accounts.UpdatePassword(c.Request.Context(), account.ID, hash); err != nil {
		h.log.Error().Err(err).Int64("account_id", account.ID).Msg("Failed to update password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// buildAccount validates the shared account fields and hashes the
// password. The role is fixed by the caller, never by the request.
func (h *Handler) buildAccount(c *gin.Context, in model.AccountInput, role model.Role) (*model.Account, bool) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and email are required"})
		return nil, false
	}
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email address"})
		return nil, false
	}
	if len(in.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
		return nil, false
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return nil, false
	}

	return &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, true
}
