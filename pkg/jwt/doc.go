// Package jwt issues and validates the RS256 access tokens used by the
// MAHOSTAV API.
//
// Signing and parsing are done by github.com/golang-jwt/jwt/v5; this package
// fixes the algorithm, issuer and expiry policy and maps parser failures onto
// a small set of errors:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "mahostav-api",
//	    ExpirationMins: 15,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: "user:abc", Email: "a@b.co"})
//	claims, err := svc.Validate(token)
//	if errors.Is(err, jwt.ErrTokenExpired) { ... }
//
// Keys are PEM encoded. GenerateKeyPair writes a PKCS#1 private key and a
// PKIX public key.
package jwt
