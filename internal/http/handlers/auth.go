package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sitebuilder-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ah.authService.Register(c.Request.Context(), services.RegisterCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	respond(c, http.StatusCreated, res, err)
}

// Login accepts the account in "login", "email" or "username".
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	login := req.Login
	if login == "" {
		login = req.Email
	}
	if login == "" {
		login = req.Username
	}
	res, err := ah.authService.Login(c.Request.Context(), services.LoginCommand{Login: login, Password: req.Password})
	respond(c, http.StatusOK, res, err)
}
