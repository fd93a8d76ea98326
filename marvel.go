// Package marvel provides a client for the Marvel Comics API:
// https://developer.marvel.com/docs
//
// Features:
// - Per-request MD5 authorization as required by the public API.
// - Typed helpers for characters and events.
// - Concurrent lookup of the earliest event two characters share.
package marvel
