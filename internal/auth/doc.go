// Package auth gates the museum behind a single shared secret.
//
// The credential is injected through configuration, either as a plain
// password compared in constant time or as a bcrypt hash generated by
// cmd/hashpw. Session issuance, verification, and revocation live
// behind the Sessions interface so handlers never touch the credential
// comparison directly.
package auth
