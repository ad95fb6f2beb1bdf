// Package helpers provides common utilities for end-to-end API tests.
//
// It includes a JWT helper that signs real access tokens, a request builder,
// Problem Details assertions and row counting against the test database.
//
//	jh := helpers.NewJWTHelper(t)
//	rec := helpers.NewRequest(t, http.MethodGet, "/v1/profile").
//	    WithAuth(jh, acct.User).
//	    Do(router)
//	helpers.AssertStatus(t, rec, http.StatusOK)
package helpers
