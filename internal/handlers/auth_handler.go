package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	"github.com/BruksfildServices01/store-rating/internal/models"
	authuc "github.com/BruksfildServices01/store-rating/internal/usecase/auth"
)

type AuthHandler struct {
	register       *authuc.Register
	login          *authuc.Login
	changePassword *authuc.ChangePassword
	log            *zap.Logger
}

func NewAuthHandler(
	register *authuc.Register,
	login *authuc.Login,
	changePassword *authuc.ChangePassword,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		changePassword: changePassword,
		log:            log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), authuc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "Error registering user")
		return
	}

	httpresp.Session(c, http.StatusCreated, "User registered successfully", session.Token, sessionUser(session.User))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), authuc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "Error logging in")
		return
	}

	httpresp.Session(c, http.StatusOK, "Login successful", session.Token, sessionUser(session.User))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.changePassword.Execute(c.Request.Context(), authuc.ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		httperr.Respond(c, h.log, err, "Error changing password")
		return
	}

	httpresp.OK(c, "Password changed successfully", nil)
}

func sessionUser(u *models.User) httpresp.SessionUser {
	return httpresp.SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.String(),
	}
}
