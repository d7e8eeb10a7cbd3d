package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry fully
	// qualified envconfig tags so the prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BARCODEGEN_DB_DSN"
	EnvDBHost = "BARCODEGEN_DB_HOST"
	EnvDBUser = "BARCODEGEN_DB_USER"
	EnvDBName = "BARCODEGEN_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
