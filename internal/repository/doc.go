// Package repository implements data access for the MAHOSTAV API on SurrealDB.
//
// Each repository wraps database.Database and speaks SurrealQL. Records are
// referenced by their full ID string ("event:basketball") and resolved in
// queries with type::record. Lookups return (nil, nil) when nothing matches,
// including when the ID belongs to a different table.
//
// Writes that span several rows go through database.AtomicBatch so they land
// in a single transaction:
//
//   - UserRepository.CreateAccount writes user, profile and user_role
//   - TeamRepository.CreateWithMembers writes a team and its roster
//
// Identifier generation runs inside the database as SurrealQL functions
// (fn::generate_team_id, fn::generate_mahostav_id) defined in migrations/.
package repository
