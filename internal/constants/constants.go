package constants

import "time"

const (
	AppName           = "qen"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/qen/qen.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage slot keys. Each slot holds one serialized collection (or the
	// raw dismissal phrase) and is rewritten in full on every mutation.
	SlotEvents = "events"
	SlotHabits = "habits"
	SlotPhrase = "dismissal_phrase"

	// DefaultDismissalPhrase must be typed into the alarm overlay to dismiss
	// an alarm-mode alert. Configurable via `qen settings set-phrase`.
	DefaultDismissalPhrase = "Done"

	// Scanner defaults. Any interval at or below one minute preserves
	// minute-resolution due matching.
	DefaultScanInterval = 30 * time.Second
	MaxScanInterval     = time.Minute

	// Reminder lead times offered by the confirmation forms, in minutes.
	Reminder5Min  = 5
	Reminder10Min = 10
	Reminder30Min = 30
	Reminder1Hour = 60
	Reminder1Day  = 1440

	// Notify constants for the tray helper webhook.
	NotifierLockfileName   = "qen-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.qenapp.qen"
	TrayExecutablePrefix   = "qen-tray"

	// Keyring slots for the extraction service credentials.
	KeyringAPIKeyUser = "openai-api-key"
	APIKeyEnvVar      = "QEN_OPENAI_API_KEY"
)
