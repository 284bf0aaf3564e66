// Package validation checks task create and update payloads before they reach
// the service layer. Every violation found in a payload is reported, in a
// fixed property order, as a domain.ValidationErrors value.
package validation
