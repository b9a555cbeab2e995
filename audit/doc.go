// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit builds the client fingerprint stored with every vote.

Votes are an append-only audit trail. Alongside the decision each row may
carry a salted hash of the client IP and the (truncated) user agent:

	fp := audit.NewFingerprint(middleware.GetClientIP(r), r.UserAgent(), cfg.VoteHashSalt)

When VOTE_HASH_SALT is not configured the fingerprint is empty and nothing
about the client is stored. Raw IP addresses are never persisted.
*/
package audit
