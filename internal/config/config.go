package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Upload     UploadConfig
	Gate       GateConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Env       string `envconfig:"APP_ENV" default:"dev"`
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsProd() bool {
	return isProdLike(a.Env)
}

type DBConfig struct {
	URL string `envconfig:"DATABASE_URL" default:"reelvault.db"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
}

// CloudinaryConfig is optional at boot. The upload endpoints check Configured()
// on every request and refuse to work without it.
type CloudinaryConfig struct {
	CloudName   string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey      string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret   string `envconfig:"CLOUDINARY_API_SECRET"`
	VideoFolder string `envconfig:"CLOUDINARY_VIDEO_FOLDER" default:"video-uploader"`
	ImageFolder string `envconfig:"CLOUDINARY_IMAGE_FOLDER" default:"next-cloudinary-uploads"`
}

func (c CloudinaryConfig) Configured() bool {
	return strings.TrimSpace(c.CloudName) != "" &&
		strings.TrimSpace(c.APIKey) != "" &&
		strings.TrimSpace(c.APISecret) != ""
}

type UploadConfig struct {
	MaxVideoBytes int64 `envconfig:"UPLOAD_MAX_VIDEO_BYTES" default:"73400320"` // 70 MiB
	MaxImageBytes int64 `envconfig:"UPLOAD_MAX_IMAGE_BYTES" default:"10485760"` // 10 MiB
}

type GateConfig struct {
	PublicRoutes    []string `envconfig:"GATE_PUBLIC_ROUTES" default:"/sign-in,/sign-up,/,/home"`
	PublicAPIRoutes []string `envconfig:"GATE_PUBLIC_API_ROUTES" default:"/api/video"`
	LandingPath     string   `envconfig:"GATE_LANDING_PATH" default:"/home"`
	SignInPath      string   `envconfig:"GATE_SIGN_IN_PATH" default:"/sign-in"`
	Bypass          []string `envconfig:"GATE_BYPASS_ROUTES" default:"/healthz,/metrics"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Upload.MaxVideoBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_VIDEO_BYTES must be > 0")
	}
	if c.Upload.MaxImageBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_IMAGE_BYTES must be > 0")
	}
	if strings.TrimSpace(c.DB.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if !strings.HasPrefix(c.Gate.SignInPath, "/") || !strings.HasPrefix(c.Gate.LandingPath, "/") {
		return fmt.Errorf("GATE_SIGN_IN_PATH and GATE_LANDING_PATH must be absolute paths")
	}

	if c.App.IsProd() {
		if isEmptyOrDefault(c.JWT.Secret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
