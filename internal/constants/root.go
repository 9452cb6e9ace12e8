package constants

import "time"

const (
	AppName            = "habitup"
	DefaultKeyringUser = "database-connection"
	TokenKeyringUser   = "token-secret"
	DefaultConfigPath  = "~/.config/habitup/habitup.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar date format used for completion records (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time format (HH:MM)
	TimeFormat = "15:04"

	// TimeOfDayFormat is the completion time format (HH:MM:SS)
	TimeOfDayFormat = "15:04:05"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitup-"
	BackupFileSuffix = ".db"

	// Server defaults
	DefaultAddr         = ":8080"
	DefaultTokenTTL     = 24 * time.Hour
	ShutdownGracePeriod = 10 * time.Second

	// Notifier
	NotifierLockfileName = "habitup-tray.lock"
	TrayAppIdentifier    = "com.habitup.tray"
	TrayExecutablePrefix = "habitup-tray"
	SecretHeader         = "X-Habitup-Secret"
	NotifyTimeout        = 5 * time.Second
	SubscriberBuffer     = 16
)
