package auth

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 symmetric key (HS256 mode).
	Secret string

	// PublicKeyPEM is a PEM-encoded RSA public key for validation-only mode (RS256).
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService validates (and in HS256 mode, issues) bearer tokens.
type JWTService struct {
	config    JWTConfig
	publicKey *rsa.PublicKey
	useRSA    bool
}

// NewJWTService creates a JWTService. With PublicKeyPEM set the service runs in
// validation-only RS256 mode; with only Secret set it runs in HS256 mode and can
// also issue tokens.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
		svc.useRSA = true
	case cfg.Secret != "":
		svc.useRSA = false
	default:
		return nil, fmt.Errorf("jwt configuration requires PublicKeyPEM or Secret")
	}

	return svc, nil
}

// GenerateToken creates a signed token for the given user and tenant.
// Only available in HS256 mode.
func (s *JWTService) GenerateToken(userID, tenantID uuid.UUID, roles []string) (string, error) {
	if s.useRSA {
		return "", fmt.Errorf("token generation requires the HS256 secret, service is validation-only")
	}

	now := time.Now()
	expiration := s.config.Expiration
	if expiration == 0 {
		expiration = time.Hour
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:   userID,
		TenantID: tenantID,
		Roles:    roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ValidateToken parses and validates a token string, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if s.useRSA {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TenantID == uuid.Nil {
		return nil, fmt.Errorf("token is missing tenant_id claim")
	}

	return claims, nil
}

// LoadKeyFromFile reads a PEM key file from disk.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	return data, nil
}
