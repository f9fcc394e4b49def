package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port       int    `yaml:"port"`
	GinMode    string `yaml:"gin_mode"`
	BcryptCost int    `yaml:"bcrypt_cost"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	ResendWindow string `yaml:"resend_window"`
}

type EmailConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
}

type AMQPConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Email    EmailConfig    `yaml:"email"`
	AMQP     AMQPConfig     `yaml:"amqp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	APIKey   string         `yaml:"api_key"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AccessSecret    string
	RefreshSecret   string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	OTPTTL          time.Duration
	OTPLength       int
	OTPResendWindow time.Duration
	BcryptCost      int
	ResendAPIKey    string
	EmailFrom       string
	AMQPURL         string
	AMQPQueue       string
	CasbinModelPath string
	SecretAPIKey    string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(env("ACCESS_TOKEN_EXPIRES_IN", configFile.JWT.AccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid access token TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(env("REFRESH_TOKEN_EXPIRES_IN", configFile.JWT.RefreshTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(env("OTP_EXPIRES_IN", configFile.OTP.TTL))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	otpLength := configFile.OTP.Length
	if otpLength == 0 {
		otpLength = 6
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		BcryptCost:      configFile.App.BcryptCost,
		DSN:             env("DATABASE_URL", configFile.Database.DSN),
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		AccessSecret:    env("ACCESS_TOKEN_SECRET", configFile.JWT.AccessSecret),
		RefreshSecret:   env("REFRESH_TOKEN_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		OTPTTL:          otpTTL,
		OTPLength:       otpLength,
		OTPResendWindow: resWnd,
		ResendAPIKey:    env("RESEND_API_KEY", configFile.Email.ResendAPIKey),
		EmailFrom:       configFile.Email.From,
		AMQPURL:         env("AMQP_URL", configFile.AMQP.URL),
		AMQPQueue:       configFile.AMQP.Queue,
		CasbinModelPath: configFile.Casbin.ModelPath,
		SecretAPIKey:    env("SECRET_API_KEY", configFile.APIKey),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
