package delivery_test

import (
	"testing"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from, to delivery.Status
		want     bool
	}{
		{delivery.Processing, delivery.Shipped, true},
		{delivery.Shipped, delivery.Delivered, true},
		{delivery.Processing, delivery.Delivered, false},
		{delivery.Processing, delivery.Processing, false},
		{delivery.Shipped, delivery.Processing, false},
		{delivery.Delivered, delivery.Shipped, false},
		{delivery.Delivered, delivery.Delivered, false},
		{delivery.Unknown, delivery.Processing, false},
		{delivery.Status(42), delivery.Shipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, delivery.IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []delivery.Status{delivery.Processing, delivery.Shipped, delivery.Delivered} {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := delivery.ParseStatus("Pending")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Deliver_FromProcessing(t *testing.T) {
	_, err := delivery.Processing.Deliver()

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "cannot transition delivery from Processing to Delivered")
}
