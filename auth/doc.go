// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(pollID, salt)
	err := auth.ValidateAdminKey(pollID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same poll ID and salt always produce the same key. This allows validation
without storing the key in the database.

# Identity Tokens

Respondents who are signed in carry a token minted by the external identity
provider, which shares IDENTITY_SALT with the gateway:

	token, err := auth.IssueIdentityToken(models.Identity{ID: "u1", Name: "Ana"}, salt)
	id, err := auth.ParseIdentityToken(token, salt)

The token is "<payload>.<signature>" where payload is the JSON identity and
signature its HMAC-SHA256, both URL-safe base64 without padding.
ParseIdentityToken returns ErrInvalidToken for malformed input and
ErrBadSignature when the signature does not match.

# ID Generation

Random UUIDv4 IDs for database records:

	id, err := auth.GenerateID()

# IP Hashing

For privacy-preserving abuse review of anonymous responses:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
