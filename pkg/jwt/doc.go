// Package jwt issues and verifies the API's RS256 access tokens.
//
// Tokens are stateless: nothing is persisted on issuance, and a token is
// valid until it expires. Signing and parsing are delegated to
// github.com/golang-jwt/jwt/v5; this package pins the algorithm, issuer and
// claim shape.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "wellnessflow",
//	    ExpirationMins: 60 * 24,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: 42, Email: "a@x.com"})
//
// # Token Validation
//
//	claims, err := svc.Validate(token)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the client to log in again
//	}
//	userID := claims.UserID
//
// # Claims
//
// Besides the registered claims (iss, sub, iat, nbf, exp) a token carries
// the numeric user id ("uid") and the email it was issued for. The subject
// is the decimal form of the user id and must agree with "uid".
package jwt
