// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the task service, so that business rules stay independent of the
// database engine behind them.
package store
