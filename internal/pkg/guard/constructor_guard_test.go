package guard_test

import (
	"errors"
	"sync"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errQuantityNotConstructed := errors.New("Quantity must be created via NewQuantity")

	type quantity struct {
		value int
		guard guard.ConstructorGuard
	}
	newQuantity := func(v int) quantity {
		return quantity{value: v, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newQuantity(3).guard.Validate(errQuantityNotConstructed))
	require.ErrorIs(t, quantity{value: 3}.guard.Validate(errQuantityNotConstructed), errQuantityNotConstructed)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}
