package config

import (
	"os"
	"strconv"
)

// DBConfig 数据库配置
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig JWT令牌配置
type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // 小时
	RefreshTokenTTL int // 小时
}

// SMSConfig 阿里云短信配置
type SMSConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	TemplateCode    string
}

// Config 应用配置
type Config struct {
	DBConfig    DBConfig
	RedisConfig RedisConfig
	JWTConfig   JWTConfig
	SMSConfig   SMSConfig
	Port        string
	LogDir      string
}

// LoadConfig 从环境变量加载配置，未设置时使用开发环境默认值
func LoadConfig() Config {
	return Config{
		DBConfig: DBConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "marketplace"),
		},
		RedisConfig: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWTConfig: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "dev-secret-key-change-me"),
			AccessTokenTTL:  getEnvInt("JWT_ACCESS_TOKEN_TTL", 2),
			RefreshTokenTTL: getEnvInt("JWT_REFRESH_TOKEN_TTL", 168),
		},
		SMSConfig: SMSConfig{
			AccessKeyID:     getEnv("SMS_ACCESS_KEY_ID", ""),
			AccessKeySecret: getEnv("SMS_ACCESS_KEY_SECRET", ""),
			SignName:        getEnv("SMS_SIGN_NAME", ""),
			TemplateCode:    getEnv("SMS_TEMPLATE_CODE", ""),
		},
		Port:   getEnv("SERVER_PORT", "8088"),
		LogDir: getEnv("LOG_DIR", "./logs"),
	}
}

// getEnv 读取环境变量，为空时返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 读取整数类型环境变量
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
