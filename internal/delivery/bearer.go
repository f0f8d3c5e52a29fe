package delivery

import (
	"strings"
)

// Messages the auth gates return. Both transports surface the identical
// strings, and clients match on them, so they are part of the API contract.
const (
	MsgMissingAuthHeader = "Missing or invalid Authorization header"
	MsgInvalidToken      = "Invalid or expired token"
	MsgUserNotFound      = "User not found"
	MsgAuthInternal      = "Authentication failed due to an internal error"
)

// ParseBearerToken pulls the token out of an Authorization value. The value
// must be exactly two space-separated parts with a case-insensitive
// "bearer" scheme; anything else reports false.
func ParseBearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
