// Package database provides database connectivity for the MAHOSTAV API.
//
// Connect to SurrealDB:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "mahostav",
//	    Database:  "festival",
//	    User:      "root",
//	    Password:  "secret",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//
// Server-side functions such as fn::generate_team_id are invoked through
// QueryOne with a RETURN statement; the scalar result is returned as-is.
//
// Unique index violations are reported as ErrDuplicate so callers can map
// them to domain errors without parsing driver messages.
package database
