package async

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("MapsAllElements", func(t *testing.T) {
		doubled, err := Map([]int{1, 2, 3, 4, 5}, 2, func(i int) (int, error) {
			return i * 2, nil
		})
		assert.NoError(t, err)
		sort.Ints(doubled)
		assert.Equal(t, []int{2, 4, 6, 8, 10}, doubled)
	})

	t.Run("CollectsErrors", func(t *testing.T) {
		res, err := Map([]int{1, 2, 3}, 0, func(i int) (int, error) {
			if i == 2 {
				return 0, errors.New("boom")
			}
			return i, nil
		})
		assert.Error(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		res, err := Map([]int{}, 4, func(i int) (int, error) { return i, nil })
		assert.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestWaitAll(t *testing.T) {
	t.Run("AllSucceed", func(t *testing.T) {
		err := WaitAll(
			Errable(func() error { return nil }),
			Errable(func() error { return nil }),
		)
		assert.NoError(t, err)
	})

	t.Run("OneFails", func(t *testing.T) {
		err := WaitAll(
			Errable(func() error { return nil }),
			Errable(func() error { return errors.New("nope") }),
		)
		assert.EqualError(t, err, "nope")
	})
}
