package shared

import "time"

const (
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"

	// Prefix of the note values emitted by the content acquirer when a
	// source could not be fetched. Downstream stages key off this marker.
	FetchNotePrefix = "[Note:"

	MaxWebsiteExcerpt = 5000
	MinUsableContent  = 200
	MaxSanitizedLen   = 500

	DefaultRateLimitMax    = 3
	DefaultRateLimitWindow = time.Hour

	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRealIP         = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
	AnonymousClientID    = "anonymous"
)

// ReservedHandles cannot be audited; matched case-insensitively.
var ReservedHandles = []string{"admin", "support", "help", "twitter", "instagram", "null", "undefined"}
