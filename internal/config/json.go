// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout. Secrets may be kept out
// of it and supplied through the environment instead.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		TokenDuration     Duration `json:"token_duration"`
		ResetCodeTTL      Duration `json:"reset_code_ttl"`
		ResetRoles        []string `json:"reset_roles"`
		LoginRoles        []string `json:"login_roles"`
		PasswordMinLength int      `json:"password_min_length"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db"`
		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CORSOrigins    []string `json:"cors_origins"`
		TrustProxy     bool     `json:"trust_proxy"`
	} `json:"server"`

	Notifier struct {
		Transport        string   `json:"transport"`
		FromName         string   `json:"from_name"`
		FromEmail        string   `json:"from_email"`
		Timeout          Duration `json:"timeout"`
		SMTPHost         string   `json:"smtp_host"`
		SMTPPort         int      `json:"smtp_port"`
		SMTPUser         string   `json:"smtp_user"`
		SMTPPassword     string   `json:"smtp_password"`
		SMTPImplicitTLS  bool     `json:"smtp_implicit_tls"`
		MailerSendAPIKey string   `json:"mailersend_api_key"`
	} `json:"notifier"`

	Blob struct {
		Region          string   `json:"region"`
		Endpoint        string   `json:"endpoint"`
		Bucket          string   `json:"bucket"`
		AccessKeyID     string   `json:"access_key_id"`
		SecretAccessKey string   `json:"secret_access_key"`
		PublicBaseURL   string   `json:"public_base_url"`
		PresignExpiry   Duration `json:"presign_expiry"`
	} `json:"blob"`

	RateLimit struct {
		Requests int      `json:"requests"`
		Window   Duration `json:"window"`
		HashKey  string   `json:"hash_key"`
	} `json:"rate_limit"`

	Workers struct {
		ResetReaperInterval Duration `json:"reset_reaper_interval"`
	} `json:"workers"`

	LogLevel string `json:"log_level"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:      j.App.TokenSignKey,
			TokenIssuer:       j.App.TokenIssuer,
			TokenDuration:     time.Duration(j.App.TokenDuration),
			ResetCodeTTL:      time.Duration(j.App.ResetCodeTTL),
			ResetRoles:        j.App.ResetRoles,
			LoginRoles:        j.App.LoginRoles,
			PasswordMinLength: j.App.PasswordMinLength,
		},
		Storage: Storage{
			DB: DB{
				DSN:          j.Storage.DB.DSN,
				MaxOpenConns: j.Storage.DB.MaxOpenConns,
			},
			Redis: Redis{
				Address:  j.Storage.Redis.Address,
				Password: j.Storage.Redis.Password,
				DB:       j.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			CORSOrigins:    j.Server.CORSOrigins,
			TrustProxy:     j.Server.TrustProxy,
		},
		Notifier: Notifier{
			Transport:        j.Notifier.Transport,
			FromName:         j.Notifier.FromName,
			FromEmail:        j.Notifier.FromEmail,
			Timeout:          time.Duration(j.Notifier.Timeout),
			SMTPHost:         j.Notifier.SMTPHost,
			SMTPPort:         j.Notifier.SMTPPort,
			SMTPUser:         j.Notifier.SMTPUser,
			SMTPPassword:     j.Notifier.SMTPPassword,
			SMTPImplicitTLS:  j.Notifier.SMTPImplicitTLS,
			MailerSendAPIKey: j.Notifier.MailerSendAPIKey,
		},
		Blob: Blob{
			Region:          j.Blob.Region,
			Endpoint:        j.Blob.Endpoint,
			Bucket:          j.Blob.Bucket,
			AccessKeyID:     j.Blob.AccessKeyID,
			SecretAccessKey: j.Blob.SecretAccessKey,
			PublicBaseURL:   j.Blob.PublicBaseURL,
			PresignExpiry:   time.Duration(j.Blob.PresignExpiry),
		},
		RateLimit: RateLimit{
			Requests: j.RateLimit.Requests,
			Window:   time.Duration(j.RateLimit.Window),
			HashKey:  j.RateLimit.HashKey,
		},
		Workers: Workers{
			ResetReaperInterval: time.Duration(j.Workers.ResetReaperInterval),
		},
		LogLevel: j.LogLevel,
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
