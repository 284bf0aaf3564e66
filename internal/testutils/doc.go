// Package testutils provides testing utilities for the task manager.
//
// Database tests run against a private in-memory SQLite database with the
// real migrations applied:
//
//	db := testutils.NewTestDB(t)
//	tasks := sqlstore.NewTaskStore(db, nil)
//
// Tests that want their changes discarded can use WithTx:
//
//	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    task := testutils.MustInsertTask(ctx, t, tx, testutils.WithTaskTitle("x"))
//	})
//
// Task fixtures are built with functional options:
//
//	task := testutils.NewTaskForTest(
//	    testutils.WithTaskPriority(domain.PriorityHigh),
//	    testutils.WithTaskDueDate(time.Now().AddDate(0, 0, 1)),
//	)
package testutils
