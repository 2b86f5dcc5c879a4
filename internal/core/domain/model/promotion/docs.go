// Package promotion holds discount codes and the rules deciding whether a
// code applies to an order.
package promotion
