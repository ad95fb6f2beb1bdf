// Package testdb provides SurrealDB test environments for integration tests.
//
// Each TestDB runs in its own namespace with the embedded migrations applied,
// so tests exercise the real schema including unique indexes and the
// identifier functions. When no database is reachable the test is skipped.
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and
// TEST_DB_PASSWORD, defaulting to a local root instance on port 8000.
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    rows := tdb.MustQuery("SELECT * FROM event", nil)
//	    ...
//	}
//
// For subtests that share one namespace:
//
//	tdb := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { db := tdb.SetupSubtest(t); ... })
package testdb
