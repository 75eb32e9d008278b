package constants

const (
	AppName            = "rythm"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/rythm/rythm.db"
	Version            = "v0.3.0"

	// EnvUser and EnvDBConnection are consulted when the matching flags are empty
	EnvUser         = "RYTHM_USER"
	EnvDBConnection = "RYTHM_DB_CONNECTION"

	// DateFormat is the canonical calendar day format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// AnchorHour is the UTC hour every calendar day is pinned to before doing date arithmetic
	AnchorHour = 12

	// MaxSystems is the number of non-deleted systems a user may hold
	MaxSystems = 5

	// ComebackThreshold is the number of consecutive missed days that flags a comeback
	ComebackThreshold = 2

	// Log file constants; the file lives under <config dir>/logs
	LogDirName    = "logs"
	LogFileName   = "rythm.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "rythm-"
	BackupFileSuffix = ".db"
)
