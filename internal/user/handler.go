package user

import (
	"collaborative-docs-backend/auth"
	"collaborative-docs-backend/internal/email"
	"collaborative-docs-backend/internal/errors"
	"collaborative-docs-backend/internal/verify"
	"collaborative-docs-backend/internal/worker"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service Service
	codes   *verify.Store
	mailer  *email.Service
	pool    *worker.Pool
}

// NewHandler creates a new user handler
func NewHandler(service Service, codes *verify.Store, mailer *email.Service, pool *worker.Pool) *Handler {
	return &Handler{
		service: service,
		codes:   codes,
		mailer:  mailer,
		pool:    pool,
	}
}

type FormSendCode struct {
	Email string `json:"email" binding:"required,email"`
}

type FormRegister struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	VerifyCode string `json:"verifyCode" binding:"required"`
}

type FormResetPassword struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
	VerifyCode  string `json:"verifyCode" binding:"required"`
}

type FormLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SendCode stores a fresh verification code and mails it in the background
func (h *Handler) SendCode(c *gin.Context) {
	var form FormSendCode
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	code := verify.GenerateCode()
	if err := h.codes.Save(c.Request.Context(), form.Email, code); err != nil {
		c.Error(errors.Internal(err))
		return
	}

	// mail delivery happens off the request path
	to := form.Email
	h.pool.Submit(func(ctx context.Context) error {
		return h.mailer.SendVerificationCode(to, code)
	})

	c.JSON(http.StatusOK, gin.H{"msg": "Verification code sent"})
}

// Register handles user registration, gated by the verification code
func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	ok, err := h.codes.Check(c.Request.Context(), form.Email, form.VerifyCode)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	if !ok {
		c.Error(errors.BadRequest("Wrong verification code", nil))
		return
	}

	user := &User{
		UserName: form.Username,
		Email:    form.Email,
		Password: form.Password,
	}

	if err := h.service.Register(user); err != nil {
		c.Error(err)
		return
	}

	h.consumeCode(form.Email)

	c.JSON(http.StatusOK, gin.H{"msg": "Registration successful"})
}

// ResetPassword handles password reset, gated by the verification code
func (h *Handler) ResetPassword(c *gin.Context) {
	var form FormResetPassword
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	ok, err := h.codes.Check(c.Request.Context(), form.Email, form.VerifyCode)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	if !ok {
		c.Error(errors.BadRequest("Wrong verification code", nil))
		return
	}

	if err := h.service.ResetPassword(form.Email, form.NewPassword); err != nil {
		c.Error(err)
		return
	}

	h.consumeCode(form.Email)

	c.JSON(http.StatusOK, gin.H{"msg": "Password reset successful"})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, err := h.service.Login(form.Email, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":    "Login successful",
		"userId": user.ID,
		"token":  token,
	})
}

// GetUsers lists every user for the sharing picker
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// codes are one-time; removal failure only shortens nothing, so log and move on
func (h *Handler) consumeCode(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.codes.Consume(ctx, email); err != nil {
		log.Printf("failed to consume verification code for %s: %v", email, err)
	}
}
