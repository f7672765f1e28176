package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_MalformedIDIsNotFound(t *testing.T) {
	for _, raw := range []string{"", "not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		_, err := queries.NewGetOrderQuery(raw)
		require.ErrorIs(t, err, errs.ErrObjectNotFound, raw)

		_, err = queries.NewGetDeliveryQuery(raw)
		require.ErrorIs(t, err, errs.ErrObjectNotFound, raw)

		_, err = queries.NewGetDeliveryByOrderQuery(raw)
		require.ErrorIs(t, err, errs.ErrObjectNotFound, raw)

		_, err = queries.NewGetOrderTimelineQuery(raw)
		require.ErrorIs(t, err, errs.ErrObjectNotFound, raw)
	}
}

func TestNewListQueries_StatusFilter(t *testing.T) {
	_, err := queries.NewListOrdersQuery("Pending")
	require.NoError(t, err)
	_, err = queries.NewListOrdersQuery("  ")
	require.NoError(t, err)

	_, err = queries.NewListOrdersQuery("Processing")
	assert.True(t, errs.IsValidation(err))

	_, err = queries.NewListDeliveriesQuery("Processing")
	require.NoError(t, err)
	_, err = queries.NewListDeliveriesQuery("Pending")
	assert.True(t, errs.IsValidation(err))
}

func TestZeroValueQueriesFailValidation(t *testing.T) {
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetDeliveryQuery{}.Validate(), queries.ErrGetDeliveryQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListDeliveriesQuery{}.Validate(), queries.ErrListDeliveriesQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderTimelineQuery{}.Validate(), queries.ErrGetOrderTimelineQueryIsNotConstructed)
}
