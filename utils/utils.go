package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"nextjs_to_go/config"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateTokens 生成访问令牌和刷新令牌
func GenerateTokens(userID int, role string, cfg config.Config) (string, string, error) {
	// 生成访问令牌
	expirationTime := time.Now().Add(time.Duration(cfg.JWTConfig.AccessTokenTTL) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": role,
		"exp":  jwt.NewNumericDate(expirationTime),
		"iat":  jwt.NewNumericDate(time.Now()),
		"nbf":  jwt.NewNumericDate(time.Now()),
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedAccessToken, err := accessToken.SignedString([]byte(cfg.JWTConfig.SecretKey))
	if err != nil {
		return "", "", err
	}

	// 生成刷新令牌
	refreshExpirationTime := time.Now().Add(time.Duration(cfg.JWTConfig.RefreshTokenTTL) * time.Hour)
	refreshClaims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": role,
		"exp":  jwt.NewNumericDate(refreshExpirationTime),
		"iat":  jwt.NewNumericDate(time.Now()),
		"nbf":  jwt.NewNumericDate(time.Now()),
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	signedRefreshToken, err := refreshToken.SignedString([]byte(cfg.JWTConfig.SecretKey))
	if err != nil {
		return "", "", err
	}

	return signedAccessToken, signedRefreshToken, nil
}

// ParseToken 解析JWT令牌
func ParseToken(tokenString string, cfg config.Config) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTConfig.SecretKey), nil
	})

	return token, err
}

// RefreshAccessToken 用刷新令牌换取新的访问令牌
func RefreshAccessToken(refreshTokenString string, cfg config.Config) (string, error) {
	token, err := ParseToken(refreshTokenString, cfg)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid refresh token")
	}

	// 获取用户ID和角色
	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID in token")
	}
	role, _ := claims["role"].(string)

	var userID int
	fmt.Sscanf(userIDStr, "%d", &userID)

	// 只生成新的访问令牌
	accessToken, _, err := GenerateTokens(userID, role, cfg)
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

// GenerateVerificationCode 生成6位数字验证码
func GenerateVerificationCode() string {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// 随机数生成失败时退回到时间戳取模
			return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
		}
		code += n.String()
	}
	return code
}

// GenerateAccessToken 生成接口调用令牌
func GenerateAccessToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("生成随机令牌失败: %v", err)
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(randomBytes), nil
}

// IsValidPhone 验证手机号格式是否正确
func IsValidPhone(phone string) bool {
	// 简单验证：11位数字，以1开头
	if len(phone) != 11 {
		return false
	}

	for i, char := range phone {
		if i == 0 && char != '1' {
			return false
		}
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// FormatDateTime 格式化时间
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ParseDateTime 解析时间字符串
func ParseDateTime(datetimeStr string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", datetimeStr)
}

// Pagination 分页辅助函数
func Pagination(pageNum, pageSize int) (int, int) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (pageNum - 1) * pageSize
	return offset, pageSize
}
