package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/models"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type AuthServiceI interface {
	Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.UserProfile, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error)
	Profile(ctx context.Context, userID uint) (*schemas.UserProfile, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	TokenAuth() *jwtauth.JWTAuth
}

type AuthService struct {
	users     repositories.UserRepository
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
}

func NewAuthService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		tokenAuth: jwtauth.New("HS256", []byte(jwtSecret), nil),
		tokenTTL:  tokenTTL,
	}
}

// TokenAuth exposes the signer so the router can mount the token verifier.
func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *AuthService) Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.UserProfile, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") || len(email) > 255 {
		return nil, utils.BadRequest("A valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.BadRequest("Password must be at least 8 characters")
	}
	name := strings.TrimSpace(req.Name)
	if len(name) > 100 {
		return nil, utils.BadRequest("Name must be at most 100 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.Conflict("Email already exists")
		}
		return nil, err
	}
	return toUserProfile(user), nil
}

// Login answers identically for an unknown email and a wrong password so the
// response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, utils.BadRequest("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}
	if !user.Active {
		return nil, utils.Forbidden("Account is inactive")
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	claims := map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.tokenTTL)

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &schemas.LoginResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        toUserProfile(user),
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*schemas.UserProfile, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}

func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func toUserProfile(user *models.User) *schemas.UserProfile {
	return &schemas.UserProfile{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Active:      user.Active,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
