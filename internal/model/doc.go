// Package model defines domain entities and request types for the MAHOSTAV API.
//
// # Domain Entities
//
//   - User and Profile: an account and its participant details, including the
//     optional MAHOSTAV participant ID that gates registration
//   - Event: a sports or cultural event; its team size descriptor decides
//     between solo and team registration and the minimum roster size
//   - Registration: a solo entry, at most one per user and event
//   - TeamRegistration and TeamMember: a team entry and its roster
//
// # Validation
//
// Request types carry go-playground/validator tags and expose Validate(),
// which returns []FieldError keyed by JSON field path (players[2].name).
// The custom phone10 tag accepts exactly ten ASCII digits.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
