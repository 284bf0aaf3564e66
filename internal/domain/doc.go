// Package domain contains the task entity, its priority enumeration, the
// partial-update payload types and the validation error model. It has no
// dependency on storage or transport.
package domain
