// Package fixtures provides test data factories backed by any repository
// implementation.
//
// Usage:
//
//	f := fixtures.New(userRepo, sessionRepo)
//	user := f.CreateUser(t)
//	session := f.CreateSession(t, user, fixtures.Published())
package fixtures
