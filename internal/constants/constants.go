package constants

import "time"

const (
	FetchAttemptTimeout = 10 * time.Second
	MaxFetchAttempts    = 3
	RetryBaseDelay      = 500 * time.Millisecond
)

const (
	PreloadWorkers = 8
)

const (
	AssetDirPerm  = 0o755
	AssetFilePerm = 0o644
)
