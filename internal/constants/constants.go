package constants

const (
	AppName            = "mealtrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/mealtrack"
	DefaultDBPath      = "~/.config/mealtrack/mealtrack.db"
	DefaultConfigFile  = "config.toml"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted by --time flags (YYYY-MM-DD HH:MM)
	DateTimeFormat = "2006-01-02 15:04"

	// DisplayFormat renders a meal time for humans
	DisplayFormat = "Jan 02, 2006 - 15:04"

	// Field limits for meal records
	MaxNameLength     = 100
	MaxNotesLength    = 500
	MaxLocationLength = 200

	// MaxFutureHours bounds how far ahead a meal may be logged
	MaxFutureHours = 24

	// MinMealYear is the earliest year a meal time may fall in (from Jan 1, UTC)
	MinMealYear = 1900

	// Environment overrides
	EnvDBPath       = "MEALTRACK_DB_PATH"
	EnvTimezone     = "MEALTRACK_TIMEZONE"
	EnvDBConnection = "MEALTRACK_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mealtrack-"
	BackupFileSuffix = ".db"
)
