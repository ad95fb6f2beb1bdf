// Package service implements the business logic of the MAHOSTAV API.
//
// Services sit between HTTP handlers and repositories. Each one takes a
// config struct of dependencies, defines the repository interfaces it needs,
// and returns sentinel errors from errors.go that handlers map to problem
// details.
//
// # Registration
//
// RegistrationService owns both registration paths:
//
//   - RegisterSolo checks for an existing (user, event) registration before
//     writing and maps a unique-index violation on commit to
//     ErrAlreadyRegistered.
//   - RegisterTeam rejects players whose case-folded names already appear on
//     another roster for the event, then writes the team and its members in
//     one transaction.
//
// Both paths share an in-flight guard keyed by user and event, so a double
// submit is rejected with ErrSubmissionInProgress while the first is running.
//
//	svc := NewRegistrationService(RegistrationServiceConfig{
//	    Users:            userRepo,
//	    EventRepo:        eventRepo,
//	    RegistrationRepo: registrationRepo,
//	    TeamRepo:         teamRepo,
//	})
//	team, err := svc.RegisterTeam(ctx, userID, eventID, req)
//	var dup *DuplicatePlayerError
//	if errors.As(err, &dup) { ... dup.Players ... }
package service
