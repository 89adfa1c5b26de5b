package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppEnv       string
	Port         string
	JWTSecret    string
	JWTTTL       time.Duration
	AllowOrigins string

	TelegramToken       string
	TelegramRelayEvery  time.Duration
	TelegramSendDelay   time.Duration
	ReminderEvery       time.Duration
	ReminderWindow      time.Duration
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	GoogleSAJSONPath    string
	GoogleSpreadsheetID string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	AppEnv = GetEnv("APP_ENV", "development")
	if AppEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env not found, using system environment")
		} else {
			log.Println("[INFO] .env loaded")
		}
	}

	Port = GetEnv("PORT", "3000")
	JWTSecret = strings.TrimSpace(GetEnv("JWT_SECRET"))
	JWTTTL = time.Duration(GetEnvInt("JWT_TTL_HOURS", 24)) * time.Hour
	AllowOrigins = GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")

	TelegramToken = strings.TrimSpace(GetEnv("TELEGRAM_BOT_TOKEN"))
	TelegramRelayEvery = time.Duration(GetEnvInt("TELEGRAM_RELAY_INTERVAL_SECONDS", 15)) * time.Second
	TelegramSendDelay = time.Duration(GetEnvInt("TELEGRAM_SEND_DELAY_MS", 35)) * time.Millisecond
	ReminderEvery = time.Duration(GetEnvInt("REMINDER_INTERVAL_MINUTES", 60)) * time.Minute
	ReminderWindow = time.Duration(GetEnvInt("REMINDER_WINDOW_HOURS", 24)) * time.Hour

	RedisAddr = strings.TrimSpace(GetEnv("REDIS_ADDR"))
	RedisPassword = GetEnv("REDIS_PASSWORD")
	RedisDB = GetEnvInt("REDIS_DB", 0)

	GoogleSAJSONPath = strings.TrimSpace(GetEnv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	GoogleSpreadsheetID = strings.TrimSpace(GetEnv("GOOGLE_SHEETS_SPREADSHEET_ID"))

	if JWTSecret == "" {
		log.Fatal("[ERROR] JWT_SECRET is not set")
	}
	if TelegramToken == "" {
		log.Println("[INFO] TELEGRAM_BOT_TOKEN empty, bot disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if AppEnv == "development" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
