// Package token creates and verifies compact HMAC-signed tokens.
//
// Tokens carry a JSON payload and a truncated HMAC-SHA256 signature,
// base64url-encoded as "payload.signature". They are unguessable without
// the secret and tamper-evident, which makes them suitable for
// invitation links and similar one-off credentials. They are not
// encrypted: the payload is readable by anyone holding the token.
package token
