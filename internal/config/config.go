package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jacksonlee411/jobly/pkg/authz"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

const devSecretKey = "secret-dev"

const defaultBcryptCost = 12

type Config struct {
	Env           string
	HTTPAddr      string
	DatabaseURL   string
	SecretKey     []byte
	BcryptCost    int
	TokenTTL      time.Duration
	LogLevel      string
	AuthzMode     authz.Mode
	AllowlistPath string
	ModelPath     string
	PolicyPath    string
}

// LoadDotEnv loads variables from the given files (default ".env") without overriding the
// process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func FromEnv() (Config, error) {
	return FromLookup(os.Getenv)
}

func FromLookup(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	c := Config{
		Env:           strings.ToLower(get("APP_ENV", EnvDevelopment)),
		HTTPAddr:      get("HTTP_ADDR", ":3001"),
		LogLevel:      get("LOG_LEVEL", "info"),
		AllowlistPath: get("ALLOWLIST_PATH", ""),
		ModelPath:     get("AUTHZ_MODEL_PATH", ""),
		PolicyPath:    get("AUTHZ_POLICY_PATH", ""),
	}

	c.DatabaseURL = getenv("DATABASE_URL")
	if c.DatabaseURL == "" {
		c.DatabaseURL = dbDSNFromFallbackEnv(get, c.Env)
	}

	secret := getenv("SECRET_KEY")
	if secret == "" {
		if c.Env == EnvProduction {
			return Config{}, errors.New("config: SECRET_KEY is required in production")
		}
		secret = devSecretKey
	}
	c.SecretKey = []byte(secret)

	cost := defaultBcryptCost
	if c.Env == EnvTest {
		cost = bcrypt.MinCost
	}
	if raw := get("BCRYPT_WORK_FACTOR", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < bcrypt.MinCost || n > bcrypt.MaxCost {
			return Config{}, errors.New("config: invalid BCRYPT_WORK_FACTOR")
		}
		cost = n
	}
	c.BcryptCost = cost

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, errors.New("config: invalid TOKEN_TTL")
	}
	c.TokenTTL = ttl

	mode, err := authz.ParseMode(getenv("AUTHZ_MODE"), getenv("AUTHZ_UNSAFE_ALLOW_DISABLED") == "1")
	if err != nil {
		return Config{}, err
	}
	c.AuthzMode = mode

	return c, nil
}

func dbDSNFromFallbackEnv(get func(key, def string) string, env string) string {
	name := "jobly"
	if env == EnvTest {
		name = "jobly_test"
	}
	host := get("DB_HOST", "127.0.0.1")
	port := get("DB_PORT", "5432")
	user := get("DB_USER", "app")
	pass := get("DB_PASSWORD", "app")
	name = get("DB_NAME", name)
	sslmode := get("DB_SSLMODE", "disable")

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, pass),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}
