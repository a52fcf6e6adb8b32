package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry explicit
	// variable names so the prefix mostly documents intent.
	EnvPrefix = "PITCHPARTNER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PITCHPARTNER_DB_DSN"
	EnvDBHost = "PITCHPARTNER_DB_HOST"
	EnvDBUser = "PITCHPARTNER_DB_USER"
	EnvDBName = "PITCHPARTNER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
