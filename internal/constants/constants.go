package constants

import "time"

const (
	DBMaxOpenConns    = 16
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DatabaseTimeout   = 5 * time.Second
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	EventBuffer      = 8
	DefaultHeartbeat = 15 * time.Second
)

const (
	PlayerSecretHeader = "X-Player-Secret"
	PlayerSecretCookie = "player_secret"
)
