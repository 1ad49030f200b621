package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeSession  TokenType = "session"
	TokenTypeDownload TokenType = "download"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
)

// Claims represents custom JWT claims
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	Username  string    `json:"username,omitempty"`
	// ProductIDs lists the products a download token grants.
	ProductIDs []int `json:"product_ids,omitempty"`
}

// TokenService signs and validates the service's stateless tokens:
// admin session cookies and download grants.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	issuer     string
}

// NewTokenService creates a new token service
func NewTokenService(secret string, sessionTTL time.Duration, issuer string) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		issuer:     issuer,
	}
}

// IssueSession issues a signed session token for the given admin user.
func (s *TokenService) IssueSession(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.sessionTTL)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   username,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: TokenTypeSession,
		Username:  username,
	}

	token, err := s.generateToken(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateSession validates a session token and returns its claims.
func (s *TokenService) ValidateSession(tokenString string) (*Claims, error) {
	claims, err := s.validateToken(tokenString, TokenTypeSession)
	if err != nil {
		return nil, err
	}
	if claims.Username == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// ValidateSessionUser validates a session token and returns the
// username it belongs to.
func (s *TokenService) ValidateSessionUser(tokenString string) (string, error) {
	claims, err := s.ValidateSession(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// IssueDownloadToken issues a signed token granting the given products.
func (s *TokenService) IssueDownloadToken(productIDs []int, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType:  TokenTypeDownload,
		ProductIDs: productIDs,
	}

	return s.generateToken(claims)
}

// ValidateDownloadToken validates a download token and returns the
// product ids it grants.
func (s *TokenService) ValidateDownloadToken(tokenString string) ([]int, error) {
	claims, err := s.validateToken(tokenString, TokenTypeDownload)
	if err != nil {
		return nil, err
	}
	if len(claims.ProductIDs) == 0 {
		return nil, ErrInvalidClaims
	}
	return claims.ProductIDs, nil
}

func (s *TokenService) generateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) validateToken(tokenString string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}
