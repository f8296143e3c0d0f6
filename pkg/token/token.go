package token

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/jwt"

	"SkiBuddy/config"
	"SkiBuddy/pkg/errors"
)

const (
	IdentityKey = "uid"
	TypeKey     = "type"

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// 这个实例会被 middleware 和 token 包共同使用
var sharedGenerator *jwt.HertzJWTMiddleware

// Pair 一组访问令牌和刷新令牌
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func Init() error {
	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     accessTTL(),
		MaxRefresh:  refreshTTL(),
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token generator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 生成器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}

func accessTTL() time.Duration {
	return time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute
}

func refreshTTL() time.Duration {
	return time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour
}

// RefreshTTL 刷新令牌有效期，缓存刷新令牌时使用
func RefreshTTL() time.Duration {
	return refreshTTL()
}

// GenerateTokenPair 生成 access token 和 refresh token
func GenerateTokenPair(userID string) (Pair, error) {
	if sharedGenerator == nil {
		return Pair{}, errors.ErrTokenGeneratorNotInitialized
	}

	now := time.Now()
	expiresAt := now.Add(accessTTL())

	access, err := sign(jwtv5.MapClaims{
		IdentityKey: userID,
		TypeKey:     TypeAccess,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	})
	if err != nil {
		return Pair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := sign(jwtv5.MapClaims{
		IdentityKey: userID,
		TypeKey:     TypeRefresh,
		"iat":       now.Unix(),
		"exp":       now.Add(refreshTTL()).Unix(),
	})
	if err != nil {
		return Pair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresIn := int(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return Pair{AccessToken: access, RefreshToken: refresh, ExpiresIn: expiresIn}, nil
}

func sign(claims jwtv5.MapClaims) (string, error) {
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(sharedGenerator.Key)
}

// ValidateRefreshToken 验证 refresh token 并返回用户 ID
func ValidateRefreshToken(tokenString string) (string, error) {
	if sharedGenerator == nil {
		return "", errors.ErrTokenGeneratorNotInitialized
	}

	token, err := jwtv5.ParseWithClaims(tokenString, jwtv5.MapClaims{}, func(token *jwtv5.Token) (interface{}, error) {
		if token.Method != jwtv5.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: %v, expected HS256", errors.ErrUnexpectedSigningMethod, token.Header["alg"])
		}
		return sharedGenerator.Key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", errors.ErrInvalidTokenClaims
	}

	if tokenType, _ := claims[TypeKey].(string); tokenType != TypeRefresh {
		return "", errors.ErrInvalidTokenType
	}

	uid, ok := UserIDFromClaims(claims)
	if !ok {
		return "", errors.ErrUserIDNotFound
	}
	return uid, nil
}

// UserIDFromClaims 取出用户 ID，兼容被解析成 float64 的数字 ID
func UserIDFromClaims(claims map[string]interface{}) (string, bool) {
	switch v := claims[IdentityKey].(type) {
	case string:
		return v, v != ""
	case float64:
		return fmt.Sprintf("%.0f", v), true
	default:
		return "", false
	}
}
