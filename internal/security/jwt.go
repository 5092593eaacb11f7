package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobboard/internal/common"
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	secret []byte
	issuer string
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), issuer: "jobboard"}
}

// Generate returns a signed HS256 token. The jti keys the session record, so
// clearing the session revokes the token before its expiry.
func (p *JWTProvider) Generate(userID common.UUID, role string, ttl time.Duration) (token string, tokenID string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(ttl)
	tokenID = common.NewUUID().String()
	claims := Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    p.issuer,
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	return token, tokenID, expiresAt, err
}

func (p *JWTProvider) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.NewError(common.CodeUnauthorized, "unexpected signing method", nil)
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid token", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, common.NewError(common.CodeUnauthorized, "invalid token claims", nil)
	}
	return claims, nil
}
