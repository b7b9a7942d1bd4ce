package config

import (
	"github.com/dmitrijs2005/cocreate/internal/flagx"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override
// them. The same keys are used in config files (JSON or YAML).
var envBindings = map[string]string{
	"endpoint_addr_http":      "HTTP_ADDR",
	"endpoint_addr_grpc":      "GRPC_ADDR",
	"database_dsn":            "DATABASE_DSN",
	"secret_key":              "SECRET_KEY",
	"token_validity_duration": "TOKEN_VALIDITY",
	"genai_api_key":           "GOOGLE_AI_STUDIO_API_KEY",
	"genai_model":             "GENAI_MODEL",
	"genai_timeout":           "GENAI_TIMEOUT",
	"generation_language":     "GENERATION_LANGUAGE",
	"s3_root_user":            "S3_ROOT_USER",
	"s3_root_password":        "S3_ROOT_PASSWORD",
	"s3_bucket":               "S3_BUCKET",
	"s3_region":               "S3_REGION",
	"s3_base_endpoint":        "S3_BASE_ENDPOINT",
	"export_url_validity":     "EXPORT_URL_VALIDITY",
	"log_backend":             "LOG_BACKEND",
	"log_level":               "LOG_LEVEL",
}

// parseFileAndEnv overlays values from the file named by -c/-config (if any)
// and then from the environment. Only keys that are actually set are
// applied, so defaults survive partial files.
//
// An unreadable or malformed config file panics, like bad flags do.
func parseFileAndEnv(config *Config, args []string) {
	v := viper.New()

	if path := flagx.ConfigFileFlag(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic(err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			panic(err)
		}
	}

	setString(v, "endpoint_addr_http", &config.EndpointAddrHTTP)
	setString(v, "endpoint_addr_grpc", &config.EndpointAddrGRPC)
	setString(v, "database_dsn", &config.DatabaseDSN)
	setString(v, "secret_key", &config.SecretKey)
	setString(v, "genai_api_key", &config.GenAIAPIKey)
	setString(v, "genai_model", &config.GenAIModel)
	setString(v, "generation_language", &config.GenerationLanguage)
	setString(v, "s3_root_user", &config.S3RootUser)
	setString(v, "s3_root_password", &config.S3RootPassword)
	setString(v, "s3_bucket", &config.S3Bucket)
	setString(v, "s3_region", &config.S3Region)
	setString(v, "s3_base_endpoint", &config.S3BaseEndpoint)
	setString(v, "log_backend", &config.LogBackend)
	setString(v, "log_level", &config.LogLevel)

	if v.IsSet("token_validity_duration") {
		config.TokenValidityDuration = v.GetDuration("token_validity_duration")
	}
	if v.IsSet("genai_timeout") {
		config.GenAITimeout = v.GetDuration("genai_timeout")
	}
	if v.IsSet("export_url_validity") {
		config.ExportURLValidity = v.GetDuration("export_url_validity")
	}
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}
