package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service handles authentication and registration.
type Service struct {
	repo       Repository
	tokenGen   TokenGenerator
	policy     *UserPolicy
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, policy *UserPolicy, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		policy:     policy,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetByEmail(dto.Email)
	if err != nil || account == nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	return s.issueTokens(account.ID, account.Email)
}

// Register creates a new account. The first account ever created becomes
// the admin with every permission; later accounts get view-only. The
// registration cap is checked before anything is written.
func (s *Service) Register(dto RegisterDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err == nil && existing != nil {
		return AuthTokens{}, ErrEmailTaken
	}

	total, err := s.repo.Count()
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to count users: %w", err)
	}

	if err := s.policy.CanRegister(total); err != nil {
		s.logger.Warn("registration rejected: user limit reached", "total_users", total)
		return AuthTokens{}, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := RoleUser
	permissions := DefaultPermissions()
	if total == 0 {
		role = RoleAdmin
		permissions = AllPermissions()
	}

	account := &Account{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		Permissions:  permissions,
	}

	id, err := s.repo.Create(account)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", id, "email", dto.Email, "role", role)

	return s.issueTokens(id, dto.Email)
}

// RefreshTokens validates a refresh token and returns a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	return s.issueTokens(claims.UserID, claims.Email)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// GetPrincipal loads the current user with role and permissions, as the
// middleware needs it on every authenticated request.
func (s *Service) GetPrincipal(userID int64) (*Principal, error) {
	return s.repo.GetPrincipal(userID)
}

func (s *Service) issueTokens(userID int64, email string) (AuthTokens, error) {
	accessToken, err := s.tokenGen.GenerateAccessToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, email string) (string, error) {
	return j.generate(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, email string) (string, error) {
	return j.generate(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) generate(userID int64, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a token against both secrets, trying
// the access secret first.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	for _, secret := range [][]byte{j.AccessTokenSecret, j.RefreshTokenSecret} {
		claims, err := j.parseWith(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
	}
	return nil, ErrInvalidToken
}

func (j *JWTTokenGenerator) parseWith(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
