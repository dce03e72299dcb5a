package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("BOT_TOKEN", "test_bot_token")
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET_KEY")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BotToken != "test_bot_token" {
		t.Errorf("BotToken = %q, want %q", cfg.BotToken, "test_bot_token")
	}
	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	// Battle defaults
	if cfg.BattleInviteTTLMinutes != 5 {
		t.Errorf("BattleInviteTTLMinutes = %d, want 5", cfg.BattleInviteTTLMinutes)
	}
	if cfg.BattleRoundDelaySecs != 2 {
		t.Errorf("BattleRoundDelaySecs = %d, want 2", cfg.BattleRoundDelaySecs)
	}
	if cfg.GetBattleInviteTTL() != 5*time.Minute {
		t.Errorf("GetBattleInviteTTL() = %v, want 5m", cfg.GetBattleInviteTTL())
	}
	if cfg.GetBattleRoundDelay() != 2*time.Second {
		t.Errorf("GetBattleRoundDelay() = %v, want 2s", cfg.GetBattleRoundDelay())
	}
	if cfg.GetBattleFinalGrace() != 15*time.Second {
		t.Errorf("GetBattleFinalGrace() = %v, want 15s", cfg.GetBattleFinalGrace())
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing BOT_TOKEN",
			envVars: map[string]string{
				"DB_PASSWORD":    "password",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"BOT_TOKEN":      "token",
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"BOT_TOKEN":   "token",
				"DB_PASSWORD": "password",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		BotToken:   "token",
		DBPassword: "password",
		JWTSecret:  "short",
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Development skips checks",
			cfg: Config{
				AppEnv:    "development",
				DBSSLMode: "disable",
			},
			wantErr: false,
		},
		{
			name: "Production requires SSL",
			cfg: Config{
				AppEnv:         "production",
				DBSSLMode:      "disable",
				JWTSecret:      "a_real_secret_key_with_32_chars_minimum_x",
				SuperAdminTgID: 1,
			},
			wantErr: true,
		},
		{
			name: "Production requires super admin",
			cfg: Config{
				AppEnv:    "production",
				DBSSLMode: "require",
				JWTSecret: "a_real_secret_key_with_32_chars_minimum_x",
			},
			wantErr: true,
		},
		{
			name: "Valid production config",
			cfg: Config{
				AppEnv:         "production",
				DBSSLMode:      "require",
				JWTSecret:      "a_real_secret_key_with_32_chars_minimum_x",
				SuperAdminTgID: 1,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProductionSecurity() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "quizbot",
		DBPassword: "secret",
		DBName:     "quizbot_db",
		DBSSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=quizbot password=secret dbname=quizbot_db sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
