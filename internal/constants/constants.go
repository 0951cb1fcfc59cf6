package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultStoragePath = "~/.config/habitual/habitual.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the canonical day key format used for logs and exports (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time format (HH:MM)
	TimeFormat = "15:04"

	// PersistKey is the key the serialized state is stored under in key-value backends
	PersistKey = "habit-storage"

	// StateVersion is bumped whenever the persisted state layout changes
	StateVersion = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitual-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitual"
	TrayAppExecutable      = "habitual-tray"

	// Statistics windows
	DefaultStatsWindowDays = 7
	LongStatsWindowDays    = 30
	DefaultHeatmapDays     = 28
	DefaultSeriesDays      = 7
	ExampleHistoryDays     = 14

	// ExampleCompletionChance is the probability a sample habit is marked done on a due day
	ExampleCompletionChance = 0.7

	// Settings defaults
	DefaultTimezone   = "Local"
	DefaultAPIAddress = "127.0.0.1:7878"
)
