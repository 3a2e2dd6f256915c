package config

import (
	"flag"
	"os"

	"shop-service/flagx"
)

var serverFlags = []string{
	"-a", "-driver", "-d", "-s", "-t", "-cost", "-workers",
	"-storage", "-u", "-b", "-g", "-e", "-pub", "-su", "-sp",
	"-cache", "-redis", "-l",
}

// parseFlags populates config from command-line flags.
//
// Supported flags:
//
//	-a string         HTTP bind address (e.g. ":5000")
//	-driver string    database driver: sqlite3 | pgx
//	-d string         database DSN
//	-s string         token signing secret
//	-t duration       token lifetime (e.g. 24h)
//	-cost int         bcrypt cost
//	-workers int      concurrent password hashes
//	-storage string   image storage: local | s3
//	-u string         local upload directory
//	-b string         S3 bucket
//	-g string         S3 region
//	-e string         S3 base endpoint
//	-pub string       public URL prefix for S3 objects
//	-su / -sp string  S3 credentials
//	-cache string     cache type ("none" disables)
//	-redis string     redis address
//	-l string         log level
//
// Only the flags above are read from os.Args, so other components may
// define flags of their own.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token lifetime")
	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.HashWorkers, "workers", config.HashWorkers, "concurrent password hashes")
	fs.StringVar(&config.ImageStorage, "storage", config.ImageStorage, "image storage (local|s3)")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "local upload directory")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicURL, "pub", config.S3PublicURL, "S3 public URL prefix")
	fs.StringVar(&config.S3RootUser, "su", config.S3RootUser, "S3 user")
	fs.StringVar(&config.S3RootPassword, "sp", config.S3RootPassword, "S3 password")
	fs.StringVar(&config.CacheType, "cache", config.CacheType, "cache type")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
