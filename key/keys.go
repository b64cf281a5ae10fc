// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 16

// Media Playback - these keys maintain the behavior of the external playback surface.
const (
	PlayerClock                = "player.clock"
	PlayerSeekStep             = "player.seek_step"
	PlayerVolumeStep           = "player.volume_step"
	PlayerAutoStopOnQuiz       = "player.auto_stop_on_quiz"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// Access Control - these keys gate playback shortcuts behind subscription status.
const (
	AccessRequiresSubscription = "access.requires_subscription"
	AccessIsSubscribed         = "access.is_subscribed"
)

// Progress Tracking - these keys configure the persistence of lesson consumption state.
const (
	ProgressSaveOnWatch = "progress.save_on_watch"
)

// Captions - these keys configure default caption track selection.
const (
	CaptionsDefaultLanguage = "captions.default_language"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the watch screen's styling and logic.
const (
	TUIShowHelp = "tui.show_help"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
