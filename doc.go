// Package userauth provides authentication primitives: signed, time limited
// identity tokens, bcrypt password hashing and a go-router middleware that
// guards routes.
//
// Tokens:
//   - TokenAuthority holds a single HMAC secret. CreateToken embeds an opaque
//     Claims map (a "userId" plus an optional "data" mapping) together with
//     iat and exp, exp being a whole number of minutes after issuance.
//   - VerifyToken is all or nothing. It returns a VerificationResult with
//     Verified set, or an error wrapping ErrInvalidToken (expired, malformed
//     or bad signature). There is no revocation.
//
// Gate:
//   - Gate looks for a token in a fixed order: JSON or form body field,
//     query parameter, route parameter, a dedicated header, an Authorization
//     header with a known scheme, and finally a cookie. The first non-empty
//     value wins.
//   - A request with no token gets a 401 with
//     {"success":false,"message":"Unauthorised","data":{}}. A token that
//     fails verification is returned to the router error handler. Set
//     GateConfig.ErrorHandler to ErrorHandler, or use FiberErrorHandler on
//     the fiber app, to render it with the same envelope.
//   - On success the user id is stored in router locals and in the request
//     context.
//
// Passwords:
//   - BcryptHasher salts and hashes with a cost of 10 by default.
//     ComparePassword returns false on mismatch and an error only when the
//     hashing primitive fails.
package userauth
