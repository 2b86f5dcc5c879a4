// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work and outbound capabilities such as
// OTP delivery and event publishing.
package ports
