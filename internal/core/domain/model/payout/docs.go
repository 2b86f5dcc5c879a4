// Package payout is the ledger of delivery agent earnings.
//
// An Entry is created when an order is delivered. Its amounts follow the
// RateTable in force and are never negative; the charge never exceeds the
// earning. Entries are paid by the disbursement process and never unpaid.
package payout
