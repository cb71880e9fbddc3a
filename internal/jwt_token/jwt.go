package jwttoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
)

// Claims mirrors what the Jurify backend puts into its access tokens.
// The subject is the user's email.
type Claims struct {
	Role   string `json:"role"`
	UserID int64  `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// JWTService reads backend access tokens. With a signing key it verifies
// HMAC signatures; without one it only decodes, leaving verification to the
// backend that issued the token.
type JWTService struct {
	signingKey []byte
	parser     *jwt.Parser
	now        func() time.Time
}

func NewJWTService(signingKey string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		parser:     jwt.NewParser(jwt.WithoutClaimsValidation()),
		now:        time.Now,
	}
}

// Verifying reports whether signatures are checked.
func (s *JWTService) Verifying() bool {
	return len(s.signingKey) > 0
}

// GenerateAccessToken mints a backend-shaped token. Used by tests and local
// fakes of the backend; the gateway itself never issues tokens.
func (s *JWTService) GenerateAccessToken(email string, role domain.Role, userID domain.UserID, expiresIn time.Duration) (string, error) {
	if !s.Verifying() {
		return "", errors.New("signing key required to mint tokens")
	}
	now := s.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:   role.String(),
		UserID: int64(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(s.signingKey)
}

// ParseClaims decodes a token, verifying its signature when a key is set.
// Expiry is not enforced here; use Expired so callers can refresh instead.
func (s *JWTService) ParseClaims(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing token")
	}

	claims := &Claims{}
	var err error
	if s.Verifying() {
		_, err = s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return s.signingKey, nil
		})
	} else {
		_, _, err = s.parser.ParseUnverified(tokenString, claims)
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}

// Expired reports whether the token expires within skew of now. Tokens
// without an exp claim never expire from the gateway's point of view.
func (s *JWTService) Expired(claims *Claims, skew time.Duration) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Add(skew).Before(claims.ExpiresAt.Time)
}

// RoleOf returns the role claim, or "" when it is absent or unknown.
func (c *Claims) RoleOf() domain.Role {
	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return ""
	}
	return role
}
