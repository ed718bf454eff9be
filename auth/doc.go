// Package auth provides the authentication and authorization core:
// bcrypt password hashing, credential verification, HMAC session tokens,
// and the access-tier decision function.
//
// Identity snapshots:
//   - Login and token refresh embed an Identity snapshot in the signed
//     token. The snapshot is immutable for the token's lifetime; account
//     changes take effect at expiry or the next login.
//
// Failure taxonomy:
//   - Credential failures collapse into ErrInvalidCredentials so callers
//     cannot distinguish an unknown email from a wrong password. Token
//     failures keep distinct text codes (expired, bad signature,
//     malformed) for logging while all of them render as 401 externally.
//
// Access tiers:
//   - CanAccess is the single authorization source of truth. Handlers pass
//     an identity, a resource owner id, and a Tier; nothing else in the
//     codebase compares role flags directly.
package auth
