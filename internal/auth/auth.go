package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Capability names a single permission a principal may hold. CapabilityAdmin
// is the distinguished check used by user-management endpoints.
type Capability string

const (
	CapabilityView        Capability = "canView"
	CapabilityEdit        Capability = "canEdit"
	CapabilityExport      Capability = "canExport"
	CapabilityManageUsers Capability = "canManageUsers"
	CapabilityAdmin       Capability = "isAdmin"
)

// PermissionSet is the stored per-user permission flags. Admins are always
// treated as holding every capability regardless of what is stored.
type PermissionSet struct {
	CanView        bool `json:"canView" gorm:"column:can_view"`
	CanEdit        bool `json:"canEdit" gorm:"column:can_edit"`
	CanExport      bool `json:"canExport" gorm:"column:can_export"`
	CanManageUsers bool `json:"canManageUsers" gorm:"column:can_manage_users"`
}

func (p PermissionSet) Has(c Capability) bool {
	switch c {
	case CapabilityView:
		return p.CanView
	case CapabilityEdit:
		return p.CanEdit
	case CapabilityExport:
		return p.CanExport
	case CapabilityManageUsers:
		return p.CanManageUsers
	}
	return false
}

// AllPermissions is what the first registered user (the admin) gets.
func AllPermissions() PermissionSet {
	return PermissionSet{CanView: true, CanEdit: true, CanExport: true, CanManageUsers: true}
}

// DefaultPermissions is what every later registration gets: view only.
func DefaultPermissions() PermissionSet {
	return PermissionSet{CanView: true}
}

// Principal is the authenticated user attached to a request by the auth
// middleware. Core services receive it explicitly; nothing is cached
// between requests.
type Principal struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Role        Role          `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// EffectivePermissions reports the permission set as seen by callers:
// all-true for admins regardless of stored flags.
func (p *Principal) EffectivePermissions() PermissionSet {
	if p.IsAdmin() {
		return AllPermissions()
	}
	return p.Permissions
}

// Account is a stored user record as the auth layer sees it.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Permissions  PermissionSet
}

func (a *Account) Principal() *Principal {
	return &Principal{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Permissions: a.Permissions,
	}
}

type Repository interface {
	GetByEmail(email string) (*Account, error)
	GetPrincipal(userID int64) (*Principal, error)
	Count() (int64, error)
	Create(account *Account) (int64, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type TokenGenerator interface {
	GenerateAccessToken(userID int64, email string) (string, error)
	GenerateRefreshToken(userID int64, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
