// Package common contains shared constants and sentinel errors used across
// NyaySetu client components.
package common

// AuthorizationHeader carries the bearer token on outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the session token in AuthorizationHeader.
const BearerPrefix = "Bearer "

// Fixed keys in the persistent key-value store.
const (
	TokenKey            = "token"
	UserKey             = "user"
	OfflineQueueKey     = "offlineQueue"
	BannerDismissedKey  = "offlineBannerDismissed"
	BannerDismissedFlag = "true"
)
