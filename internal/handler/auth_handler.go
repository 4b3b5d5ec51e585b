package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service. Response shapes
// and messages are part of the wire contract consumed by the frontend,
// so they are spelled out here rather than derived.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Signup godoc
// @Summary Create account
// @Description Register a new student or teacher account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "All fields are required"))
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "All fields are required"))
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	res.Message = "User created successfully"
	response.Created(c, res)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "All fields are required"))
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "All fields are required"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	res.Message = "Login successful"
	response.JSON(c, http.StatusOK, res)
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Email a reset link when the address belongs to an account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Email is required"))
		return
	}
	if req.Email == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Email is required"))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	// Same body whether or not the account exists.
	response.Message(c, http.StatusOK, "If this email exists, a reset link has been sent.")
}

// ValidateResetToken godoc
// @Summary Validate a reset token
// @Description Check an emailed reset token without consuming it
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ValidateResetTokenRequest true "Token payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /validate-reset-token [post]
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	var req models.ValidateResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Token is required"))
		return
	}
	if req.Token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Token is required"))
		return
	}

	if err := h.service.ValidateResetToken(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Token is valid")
}

// ResetPassword godoc
// @Summary Reset password
// @Description Consume a reset token and set a new password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Token and new password are required"))
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Token and new password are required"))
		return
	}
	if len(req.NewPassword) < 6 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Password must be at least 6 characters"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Password reset successfully")
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's info
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} map[string]string
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	info := models.UserInfo{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}
	response.JSON(c, http.StatusOK, info)
}
