// Package handler provides HTTP request handlers for the MAHOSTAV API.
//
// Handlers are grouped by resource (auth, profile, events, registrations)
// and depend on small service interfaces so they can be tested with
// httptest and hand-written mocks.
//
// # Response Format
//
//   - WriteData: single resource with optional HATEOAS links
//   - WriteCollection: list of resources with a count
//   - WriteError: RFC 9457 Problem Details
//
// Service errors go through MapServiceError, which is the only place that
// decides status codes.
//
// # Routing
//
// NewRouter registers every route on a net/http ServeMux and applies the
// middleware stack. Registration routes require a participant ID:
//
//	router := handler.NewRouter(handler.RouterConfig{
//	    Auth:           handler.NewAuthHandler(authService),
//	    Registrations:  handler.NewRegistrationHandler(registrationService),
//	    TokenValidator: authService,
//	    ProfileLoader:  profileLoader,
//	})
package handler
