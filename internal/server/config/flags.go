package config

import (
	"flag"
	"os"

	"gripgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-r string   Redis address for rate-limit counters
//	-u string   per-user rate, "<count>/<unit>"
//	-i string   per-IP rate, "<count>/<unit>"
//	-o string   comma-separated CORS origin allow-list
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-r", "-u", "-i", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address for rate-limit counters")
	fs.StringVar(&config.UserRate, "u", config.UserRate, "per-user rate limit (count/unit)")
	fs.StringVar(&config.IPRate, "i", config.IPRate, "per-IP rate limit (count/unit)")
	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS origin allow-list (comma-separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
