package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AuthService struct {
	users repositories.UserRepository
	cfg   AuthConfig
	now   func() time.Time
}

func NewAuthService(stores repositories.Stores, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 720 * time.Hour
	}
	return &AuthService{users: stores.Users, cfg: cfg, now: time.Now}
}

// Claims is what a verified token says about its bearer.
type Claims struct {
	UserID primitive.ObjectID
	Role   models.Role
}

type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (Session, error) {
	user, err := s.createUser(ctx, name, email, password, models.RoleCustomer)
	if err != nil {
		return Session{}, err
	}
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("%w: load user: %v", ErrServerFault, err)
	}

	//Compare the password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: load user: %v", ErrServerFault, err)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string) (models.User, error) {
	err := s.users.UpdateName(ctx, userID, strings.TrimSpace(name))
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: update user: %v", ErrServerFault, err)
	}
	return s.Profile(ctx, userID)
}

// CreateAdmin creates an admin account unless one with that email exists. The
// bool reports whether a new account was created.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (models.User, bool, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, false, fmt.Errorf("%w: load user: %v", ErrServerFault, err)
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleAdmin)
	if errors.Is(err, ErrEmailTaken) {
		existing, err := s.users.FindByEmail(ctx, email)
		return existing, false, err
	}
	if err != nil {
		return models.User{}, false, err
	}
	log.Infow("admin user created", "email", user.Email)
	return user, true, nil
}

// ParseToken verifies an HS256 token and extracts its claims.
func (s *AuthService) ParseToken(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrUnauthorized
	}

	// Extract the user ID from the token claims
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrUnauthorized
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return Claims{}, ErrUnauthorized
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(models.RoleCustomer)
	}
	return Claims{UserID: id, Role: models.Role(role)}, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (models.User, error) {
	//Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", ErrServerFault, err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: s.now(),
	}
	err = s.users.Insert(ctx, &user)
	if errors.Is(err, repositories.ErrDuplicate) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: insert user: %v", ErrServerFault, err)
	}
	return user, nil
}

func (s *AuthService) session(user models.User) (Session, error) {
	token, err := s.createJwt(user)
	if err != nil {
		return Session{}, fmt.Errorf("%w: sign token: %v", ErrServerFault, err)
	}
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) createJwt(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID.Hex(),
		"role": string(user.Role),
		"exp":  s.now().Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
