package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/models"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"

	"github.com/go-chi/jwtauth"
)

type AuthControllerI interface {
	Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.UserProfile, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error)
	Profile(ctx context.Context, userID uint) (*schemas.UserProfile, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	TokenAuth() *jwtauth.JWTAuth
}

type AuthController struct {
	AuthService services.AuthServiceI
}

func NewAuthController(authService services.AuthServiceI) *AuthController {
	return &AuthController{AuthService: authService}
}

func (c *AuthController) Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.UserProfile, error) {
	return c.AuthService.Signup(ctx, req)
}

func (c *AuthController) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error) {
	return c.AuthService.Login(ctx, req)
}

func (c *AuthController) Profile(ctx context.Context, userID uint) (*schemas.UserProfile, error) {
	return c.AuthService.Profile(ctx, userID)
}

func (c *AuthController) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return c.AuthService.GetUser(ctx, userID)
}

func (c *AuthController) TokenAuth() *jwtauth.JWTAuth {
	return c.AuthService.TokenAuth()
}
