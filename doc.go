// Package hostauth bolts a stateless JWT layer onto a host application that
// already owns users, password hashes, and per-user metadata storage.
//
// Token issuance:
//   - TokenService mints and validates HS256 tokens whose only payload claim
//     is the numeric host user id, under data.user.id. Validation failures
//     are classified as expired, not yet valid, bad signature, or malformed.
//   - Auther runs the full login flow: credential check against the host
//     directory, token mint, and an opaque refresh token appended to the
//     user's session list before the credentials are ever released.
//
// Request authentication:
//   - RequestAuthenticator resolves a bearer token from Authorization (or its
//     Redirect-Authorization alias) on API requests only, distinguishing
//     between declining to act and rejecting a bad credential.
//   - middleware/bearerware packages the same behavior as go-router
//     middleware for protected route groups.
//
// Account recovery:
//   - Forgot/Reset/Change password handlers follow a command style: a message
//     struct plus a handler wired to the host UserDirectory and a Mailer.
//     Recovery acks are identical for known and unknown emails, and
//     confirmation mail is only sent after the password change is committed.
//
// Host adapter:
//   - HostDirectory implements the credential, directory, and attribute
//     interfaces on top of Bun-backed users/usermeta tables.
package hostauth
