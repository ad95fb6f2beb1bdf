// Package fixtures provides test data factories for integration tests.
//
// Factories write through the repositories, so fixtures carry the same
// record IDs, participant IDs and team IDs the API would produce:
//
//	f := fixtures.New(tdb.DB)
//	acct := f.CreateAccount(t, fixtures.WithParticipantID)
//	event := f.CreateEvent(t, fixtures.TeamEvent("Team of 5"))
//	team := f.CreateTeam(t, acct, event, "Asha", "Ravi")
package fixtures
