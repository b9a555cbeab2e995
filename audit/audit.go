// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// maxUserAgent bounds what is stored per vote row.
const maxUserAgent = 255

// HashIP creates a one-way salted hash of an IP address.
// Returns the first 16 hex chars (64 bits), enough to spot repeats.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Fingerprint is the client information attached to a vote row.
type Fingerprint struct {
	IPHash    *string
	UserAgent *string
}

// NewFingerprint builds the vote fingerprint for a request. Without a salt
// nothing is recorded, so deployments opt in by configuring one.
func NewFingerprint(ip, userAgent, salt string) Fingerprint {
	if salt == "" {
		return Fingerprint{}
	}

	var fp Fingerprint
	if ip != "" {
		hash := HashIP(ip, salt)
		fp.IPHash = &hash
	}
	if ua := strings.TrimSpace(userAgent); ua != "" {
		ua = truncate(ua, maxUserAgent)
		fp.UserAgent = &ua
	}
	return fp
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
