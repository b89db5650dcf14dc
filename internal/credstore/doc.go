// Package credstore provides persistent storage abstractions for session credentials.
//
// A credential record (access token, refresh token, cached email and
// verification flag) is persisted one field at a time. Three durable backends
// with different security and deployment tradeoffs are supported:
//   - File: Local filesystem storage with atomic writes and secure permissions
//   - Env: Read-only environment variable access (requires external secret management)
//   - Keyring: OS-native credential storage (macOS Keychain, Windows Credential Manager, etc.)
//
// Session management (login, token refresh, logout) requires writable storage
// (file or keyring); the env backend only supports pre-provisioned tokens.
package credstore
