package jwt

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     p.UserID,
		"employee_id": returnValueOrNil(p.EmployeeID),
		"role":        string(p.Role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromClaims rebuilds the caller from access token claims.
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)

	return auth.Principal{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       auth.Role(role),
	}, nil
}

func returnValueOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
