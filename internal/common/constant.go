// Package common contains shared constants and sentinel errors used across
// FlashDeck client components.
package common

// AuthHeaderName is the HTTP header used to carry a bearer credential
// (access token or reset ticket) on outbound requests.
const AuthHeaderName = "Authorization"

// BearerPrefix is prepended to credentials sent in AuthHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id so client-side
// logs can be matched against the authority's.
const RequestIDHeaderName = "X-Request-Id"
