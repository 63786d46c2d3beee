// Package whatsapp builds wa.me deep links that pre-fill a message for a
// destination phone number. Pure, no network access.
package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// BuildLink percent-encodes message into a wa.me link for phone. Newlines and
// non-ASCII characters are encoded; the result is deterministic for given
// inputs.
func BuildLink(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + phone + "?text=" + encoded
}
