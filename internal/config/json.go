package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags.
type StructuredJSONConfig struct {
	App struct {
		Version       string `json:"version"`
		MaxUploadSize int64  `json:"max_upload_size"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DataDir string `json:"data_dir"`
		} `json:"files,omitempty"`

		Uploads struct {
			Backend string `json:"backend"`
			Dir     string `json:"dir"`
			BaseURL string `json:"base_url"`
			Minio   struct {
				Endpoint  string `json:"endpoint"`
				AccessKey string `json:"access_key"`
				SecretKey string `json:"secret_key"`
				Bucket    string `json:"bucket"`
				UseSSL    bool   `json:"use_ssl"`
			} `json:"minio,omitempty"`
		} `json:"uploads,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Notifier struct {
		RedisAddr     string   `json:"redis_addr"`
		RedisPassword string   `json:"redis_password"`
		RedisChannel  string   `json:"redis_channel"`
		WebhookURL    string   `json:"webhook_url"`
		Timeout       Duration `json:"timeout"`
	} `json:"notifier,omitempty"`

	Workers struct {
		CleanupQueueSize int `json:"cleanup_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	minio := jsonCfg.Storage.Uploads.Minio
	cfg := &StructuredConfig{
		App: App{
			Version:       jsonCfg.App.Version,
			MaxUploadSize: jsonCfg.App.MaxUploadSize,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				DataDir: jsonCfg.Storage.Files.DataDir,
			},
			Uploads: Uploads{
				Backend: jsonCfg.Storage.Uploads.Backend,
				Dir:     jsonCfg.Storage.Uploads.Dir,
				BaseURL: jsonCfg.Storage.Uploads.BaseURL,
				Minio: Minio{
					Endpoint:  minio.Endpoint,
					AccessKey: minio.AccessKey,
					SecretKey: minio.SecretKey,
					Bucket:    minio.Bucket,
					UseSSL:    minio.UseSSL,
				},
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Notifier: Notifier{
			RedisAddr:     jsonCfg.Notifier.RedisAddr,
			RedisPassword: jsonCfg.Notifier.RedisPassword,
			RedisChannel:  jsonCfg.Notifier.RedisChannel,
			WebhookURL:    jsonCfg.Notifier.WebhookURL,
			Timeout:       time.Duration(jsonCfg.Notifier.Timeout),
		},
		Workers: Workers{
			CleanupQueueSize: jsonCfg.Workers.CleanupQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
