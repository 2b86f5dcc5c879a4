// Package services provides domain services that coordinate several aggregates
// of the laundry marketplace.
//
// The package includes:
//   - DeliveryDispatcher: assigns ready orders to available delivery agents
//   - PromotionEvaluator: checks and applies promotions to orders
//   - PayoutCalculator: computes the agent's earning for a delivered order
package services
