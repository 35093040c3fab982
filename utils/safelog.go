// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal and financial data in production
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction enables masking of emails, ids and amounts.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters SafeDebug/SafeInfo/SafeWarn output.
	LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// ParseLogLevel maps DEBUG/INFO/WARN/ERROR to a level, defaulting to INFO.
func ParseLogLevel(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ConfigureLogging overrides the env-derived defaults once config is loaded.
func ConfigureLogging(production bool, level string) {
	IsProduction = production
	LogLevel = ParseLogLevel(level)
}

// ============================================================================
// MASKING
// ============================================================================

var (
	emailRegex              = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	amountWithCurrencyRegex = regexp.MustCompile(`\b\d+([.,]\d{1,2})?\s*(€|EUR|CHF|GBP|USD|£|\$)`)
	uuidRegex               = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

func shortenUUID(id string) string {
	return id[:8] + "..."
}

// MaskString masks emails, currency amounts and full UUIDs when in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = amountWithCurrencyRegex.ReplaceAllString(result, "***")
	return uuidRegex.ReplaceAllStringFunc(result, shortenUUID)
}

func MaskAmount(amount decimal.Decimal) string {
	if IsProduction {
		return "***"
	}
	return amount.StringFixed(2)
}

// MaskID keeps the first 8 characters of an id.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// ============================================================================
// LOGGING
// ============================================================================

func logAt(level int, prefix, format string, args ...any) {
	if level < LogLevel {
		return
	}
	log.Printf("%s %s", prefix, MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...any) { logAt(LogLevelDebug, "[DEBUG]", format, args...) }

func SafeInfo(format string, args ...any) { logAt(LogLevelInfo, "[INFO]", format, args...) }

func SafeWarn(format string, args ...any) { logAt(LogLevelWarn, "[WARN]", format, args...) }

// SafeError is never filtered out.
func SafeError(format string, args ...any) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGERS
// ============================================================================

// LogFinanceAction records a write on a budget, category or transaction.
func LogFinanceAction(entity, action, id, userID string) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[%s] %s - ID: %s User: %s", entity, action, MaskID(id), MaskID(userID))
}

// LogAmountChange is LogFinanceAction for writes that carry an amount.
func LogAmountChange(entity, action, id, userID string, amount decimal.Decimal) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[%s] %s - ID: %s User: %s Amount: %s", entity, action, MaskID(id), MaskID(userID), MaskAmount(amount))
}

func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogAPIRequest never logs request bodies.
func LogAPIRequest(method, path, userID string, statusCode int, duration string) {
	if IsProduction {
		path = uuidRegex.ReplaceAllStringFunc(path, shortenUUID)
	}
	log.Printf("[API] %s %s - User: %s Status: %d Duration: %s",
		method, path, MaskID(userID), statusCode, duration)
}

func LogWebSocket(action, userID string, sessions int) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[WS] %s - User: %s Sessions: %d", action, MaskID(userID), sessions)
}

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

func LogStartup(appName, version, port string) {
	log.Printf("%s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	log.Printf("   Log Level: %d", LogLevel)
	if IsProduction {
		log.Printf("   Production mode: sensitive data is masked in logs")
	}
}
