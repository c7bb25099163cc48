// internal/domain/status_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current OrderStatus
		action  StatusAction
		want    OrderStatus
		wantErr bool
	}{
		{name: "confirm ordered", current: StatusOrdered, action: ActionConfirm, want: StatusAccepted},
		{name: "dispatch accepted", current: StatusAccepted, action: ActionDispatch, want: StatusDelivered},
		{name: "dispatch before confirm", current: StatusOrdered, action: ActionDispatch, wantErr: true},
		{name: "confirm twice", current: StatusAccepted, action: ActionConfirm, wantErr: true},
		{name: "delivered is terminal", current: StatusDelivered, action: ActionDispatch, wantErr: true},
		{name: "unknown action", current: StatusOrdered, action: "cancel", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.action)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableAction(t *testing.T) {
	assert.Equal(t, ActionConfirm, AvailableAction(StatusOrdered))
	assert.Equal(t, ActionDispatch, AvailableAction(StatusAccepted))
	// no dispatch affordance exists while an order is still Ordered,
	// and nothing applies once Delivered
	assert.Empty(t, AvailableAction(StatusDelivered))
}
