package config

import (
	"os"
	"strings"

	"bigtrip/internal/utils"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	AuthToken string
	JWTSecret string
}

func LoadEnv() Env {
	return Env{
		AppAddr:   utils.FirstNonEmpty(os.Getenv("APP_ADDR"), ":8080"),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:     utils.FirstNonEmpty(os.Getenv("DB_DSN"), "root:@tcp(127.0.0.1:3306)/big_trip?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s"),
		AuthToken: strings.TrimSpace(os.Getenv("AUTH_TOKEN")),
		JWTSecret: utils.FirstNonEmpty(os.Getenv("JWT_SECRET"), "super-secret-key-change-me"),
	}
}
