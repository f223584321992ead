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
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// DownloadConfig : параметры подписанных ссылок на скачивание.
// Secret всегда берётся из переменной окружения DOWNLOAD_SECRET,
// его отсутствие проверяется в момент выпуска токена, а не при старте
type DownloadConfig struct {
	BaseURL string `yaml:"base_url"`
	Secret  string `yaml:"-"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type GoldAPIConfig struct {
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Schedule string `yaml:"schedule"`
	NotifyTo string `yaml:"notify_to"`
}

type TTL struct {
	CacheSeconds int `yaml:"cache_seconds"`
}
