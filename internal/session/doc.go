// Package session persists the authenticated session between runs.
//
// # Layout
//
// The session file is a flat JSON object with two well-known keys:
//
//	{"token": "<opaque login token>", "username": "<username>"}
//
// A missing file, a missing key, an empty value or an unreadable file all mean
// "no session". The token is opaque to this package; validating it is the
// story backend's job (see news.Client.Restore).
//
// # Degraded Mode
//
// Persistence is best effort. When the file cannot be written the Store
// returns a KindStorage error once and switches to degraded mode, keeping the
// session in memory for the rest of the process. Callers log the error and
// carry on; the user is never shown a storage failure.
package session
