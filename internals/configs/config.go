package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	QRSecret         string
	// QRMaxAge bounds how old a scanned payload may be. 0 disables expiry.
	QRMaxAge          time.Duration
	MidtransServerKey string
	MidtransUseProd   bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] No .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	QRSecret = GetEnv("QR_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnv("MIDTRANS_USE_PROD") == "true"

	QRMaxAge = 24 * time.Hour
	if v := GetEnv("QR_MAX_AGE_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 {
			QRMaxAge = time.Duration(h) * time.Hour
		}
	}

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		// Refresh token signing falls back to the JWT secret; a dedicated key is preferred.
		log.Println("[WARN] JWT_REFRESH_SECRET not set, falling back to JWT_SECRET")
		JWTRefreshSecret = JWTSecret
	}
	if QRSecret == "" {
		// QR payload signing falls back to JWT secret; a dedicated key is preferred.
		log.Println("[WARN] QR_SECRET not set, falling back to JWT_SECRET")
		QRSecret = JWTSecret
	}
	if MidtransServerKey == "" {
		log.Println("[WARN] MIDTRANS_SERVER_KEY not set, gateway payments disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
