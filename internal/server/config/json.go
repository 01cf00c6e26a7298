package config

import (
	"encoding/json"
	"os"
	"time"

	"gripgate/internal/flagx"
	"gripgate/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Interval fields
// use timex.Duration so both "30s" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP   *string         `json:"endpoint_addr_http"`
	DatabaseDSN        *string         `json:"database_dsn"`
	JWTSecret          *string         `json:"jwt_secret"`
	RedisAddr          *string         `json:"redis_addr"`
	RedisPassword      *string         `json:"redis_password"`
	RedisDB            *int            `json:"redis_db"`
	UserRate           *string         `json:"rate_limit_user"`
	IPRate             *string         `json:"rate_limit_ip"`
	CORSAllowedOrigins *string         `json:"cors_allowed_origins"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	LimiterTimeout     *timex.Duration `json:"rate_limit_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config flags; when neither is set
// no file is loaded. Absent JSON keys leave the current value in place. An
// unreadable or malformed file panics — a broken config file must not start
// the server.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.JWTSecret != nil {
		config.JWTSecret = *c.JWTSecret
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.RedisPassword != nil {
		config.RedisPassword = *c.RedisPassword
	}
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.UserRate != nil {
		config.UserRate = *c.UserRate
	}
	if c.IPRate != nil {
		config.IPRate = *c.IPRate
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = *c.CORSAllowedOrigins
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	}
	if c.LimiterTimeout != nil {
		config.LimiterTimeout = time.Duration(c.LimiterTimeout.Duration)
	}
}
