package util

import "github.com/mxcd/go-config/config"

func InitConfig() error {
	err := config.LoadConfig([]config.Value{
		// logging config
		config.String("LOG_LEVEL").NotEmpty().Default("info"),

		// server config
		config.Bool("DEV").Default(false),
		config.Int("PORT").Default(8080),

		// API key auth (required — server refuses to start without at least one key)
		config.StringArray("API_KEYS").NotEmpty(),

		// validity window of issued signed download URLs
		config.String("SIGNED_URL_TTL").Default("5m"),

		// blob storage backend: "s3" or "local"
		config.String("STORAGE_PROVIDER").NotEmpty().Default("s3"),

		// s3 backend
		config.String("S3_REGION").Default("us-east-1"),
		config.String("S3_ENDPOINT").Default(""),
		config.String("S3_BUCKET_PREFIX").Default("corpusgate"),
		config.String("S3_ACCESS_KEY").Default("").Sensitive(),
		config.String("S3_SECRET_KEY").Default("").Sensitive(),
		config.Bool("S3_FORCE_PATH_STYLE").Default(false),

		// local backend
		config.String("LOCAL_STORAGE_DIR").Default("./blobs"),

		// base URL for generating local grant URLs (required for the local backend)
		config.String("BASE_URL").Default("http://localhost:8080"),
	})
	return err
}
