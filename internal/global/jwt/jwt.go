package jwt

import (
	"time"

	"club-activity-system/config"

	jwtlib "github.com/golang-jwt/jwt"
)

// Payload 写入令牌的用户信息
type Payload struct {
	UserID      uint   `json:"user_id"`
	StudentCode string `json:"student_code"`
	RoleID      int    `json:"role_id"`
}

type Claims struct {
	Payload
	jwtlib.StandardClaims
}

// CreateToken 签发访问令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwtlib.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
			Issuer:    "club-activity-system",
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		return ""
	}
	return signed
}

// ParseToken 解析并校验令牌
func ParseToken(tokenStr string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
