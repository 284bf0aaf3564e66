// Package api exposes the task service over HTTP. It decodes and validates
// task payloads, calls the service, and maps results and errors to JSON
// responses under the /api prefix.
package api
