// Command hashpw generates a bcrypt hash for the museum admin password.
//
// It prompts for a password twice on the terminal and prints the hash,
// which is then set as the ADMIN_PASSWORD_HASH environment variable on
// the server. Using a hash keeps the plaintext credential out of the
// server's environment.
//
// Usage:
//
//	hashpw
//
// The password must be between 6 and 72 characters; bcrypt ignores
// bytes beyond 72, so longer inputs are rejected instead of silently
// truncated.
package main
