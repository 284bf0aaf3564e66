// Package service contains the task use cases. It applies validated input to
// task entities, enforces the not-found contract and computes statistics,
// coordinating the domain layer with the repository interfaces defined here
// and implemented over internal/store.
//
// Error handling:
//   - ErrTaskNotFound is returned bare for unknown task IDs
//   - every other failure is wrapped in *TaskServiceError
//   - the API layer maps both to HTTP status codes
package service
