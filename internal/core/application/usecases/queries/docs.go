// Package queries contains read operations of the service. Handlers read
// through GORM with hand-written SQL and never change state.
package queries
