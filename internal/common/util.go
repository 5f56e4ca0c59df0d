package common

import "strings"

// IsTruthyFlag reports whether a persisted flag value is set. The value is
// trimmed and then compared exactly against BannerDismissedFlag.
func IsTruthyFlag(v string) bool {
	return strings.TrimSpace(v) == BannerDismissedFlag
}
