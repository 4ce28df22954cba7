package constants

const (
	DefaultServerPort           = 8090
	DefaultReadTimeoutSec       = 15
	DefaultWriteTimeoutSec      = 30
	DefaultIdleTimeoutSec       = 60
	DefaultMaxUploadBytes       = 32 << 20
	DefaultGracefulShutdownSec  = 10
	DefaultCleanupIntervalHours = 24

	// DefaultRetentionDays of 0 keeps saved analyses forever.
	DefaultRetentionDays = 0

	DefaultDatabaseRetryAttempts = 3

	// DefaultConversationGapHours is the silence threshold after which the
	// next message is attributed as a new conversation start.
	DefaultConversationGapHours = 8

	TopWordCount   = 10
	CloudWordCount = 50
	TopEmojiCount  = 10
	TopDomainCount = 5

	ServerErrorChannelSize = 1

	EncryptionSalt = "wasdash-analysis-v1"
)
