// Package jobs runs the API's background work on a gocron scheduler.
//
// Jobs implement a small interface and are handed to a Runner:
//
//	runner, err := jobs.NewRunner(
//	    jobs.NewOrphanTeamSweeper(jobs.OrphanSweeperConfig{Repo: teamRepo}),
//	    jobs.NewTokenCleanup(tokenService, time.Hour),
//	)
//	if err := runner.Start(); err != nil { ... }
//	defer runner.Stop()
//
// Each run gets its own timeout. Failures are logged and never stop the
// process; the next tick tries again.
package jobs
