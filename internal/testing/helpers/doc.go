// Package helpers provides HTTP and token utilities shared by handler tests.
//
// # Tokens
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//
// The helper's Service validates the tokens it issues, so tests wire it
// into the auth middleware directly.
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodGet, "/api/my-sessions").
//	    WithAuth(jwtHelper, user).
//	    Do(router)
//	helpers.AssertStatus(t, rr, http.StatusOK)
package helpers
