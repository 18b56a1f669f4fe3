// Package envutil reads typed environment variables, logging which source won.
package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

func lookup(key string, log *logger.Logger) (string, bool) {
	val, ok := os.LookupEnv(key)
	val = strings.TrimSpace(val)
	if !ok || val == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "env_var", key)
		}
		return "", false
	}
	if log != nil {
		log.Debug("Environment variable found, using environment", "env_var", key)
	}
	return val, true
}

func String(key, def string, log *logger.Logger) string {
	if v, ok := lookup(key, log); ok {
		return v
	}
	return def
}

func Int(key string, def int, log *logger.Logger) int {
	v, ok := lookup(key, log)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable could not be parsed as int, using default", "env_var", key, "error", err)
		}
		return def
	}
	return i
}

func Bool(key string, def bool, log *logger.Logger) bool {
	v, ok := lookup(key, log)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// Seconds reads an integer number of seconds.
func Seconds(key string, def time.Duration, log *logger.Logger) time.Duration {
	return time.Duration(Int(key, int(def/time.Second), log)) * time.Second
}

// List splits a comma separated value, dropping blanks.
func List(key string, def []string, log *logger.Logger) []string {
	v, ok := lookup(key, log)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
