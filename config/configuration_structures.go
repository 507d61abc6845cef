package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Client    *s3.Client
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PublicURL string `yaml:"public_url"`
	Local     bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey  string `yaml:"secret_key"`
	TokenTTL   string `yaml:"token_ttl"`
	CookieName string `yaml:"cookie_name"`
}

// OAuthConfig : внешний провайдер идентификации (userinfo endpoint)
type OAuthConfig struct {
	UserinfoURL     string `yaml:"userinfo_url"`
	Timeout         string `yaml:"timeout"`
	OwnerExternalID string `yaml:"owner_external_id"`
	OwnerEmail      string `yaml:"owner_email"`
}

type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

type ProxyConfig struct {
	Timeout string `yaml:"timeout"`
}

// TTL : времена жизни кэша снапшотов и pre-signed URL (в секундах)
type TTL struct {
	Snapshot int `yaml:"snapshot"`
	Presign  int `yaml:"presign"`
}
