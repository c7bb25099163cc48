// internal/domain/status.go
package domain

import "errors"

type OrderStatus string

const (
	StatusOrdered   OrderStatus = "Ordered"
	StatusAccepted  OrderStatus = "Accepted"
	StatusDelivered OrderStatus = "Delivered"
)

// StatusAction is a retailer-initiated step in the order lifecycle.
type StatusAction string

const (
	ActionConfirm  StatusAction = "confirm"
	ActionDispatch StatusAction = "dispatch"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// NextStatus advances an order by exactly one step. Transitions run
// Ordered -> Accepted -> Delivered, forward only, never skipped.
func NextStatus(current OrderStatus, action StatusAction) (OrderStatus, error) {
	switch {
	case current == StatusOrdered && action == ActionConfirm:
		return StatusAccepted, nil
	case current == StatusAccepted && action == ActionDispatch:
		return StatusDelivered, nil
	}
	return current, ErrInvalidTransition
}

// AvailableAction reports which single action applies to an order in
// its current status, or "" when the order is terminal.
func AvailableAction(current OrderStatus) StatusAction {
	switch current {
	case StatusOrdered:
		return ActionConfirm
	case StatusAccepted:
		return ActionDispatch
	}
	return ""
}
