// Package availability models the days and hours delivery agents plan to work.
//
// A Window is one calendar day of one agent: a holiday or a working interval
// within the daily service band (06:00-22:00). Windows of an agent never
// overlap, and an agent can only accept a delivery whose slot lies entirely
// inside one of their working windows.
package availability
