package lago_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/lago-client/pkg/lago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageOf(items []string, current, total int) *lago.ListResponse[string] {
	resp := &lago.ListResponse[string]{
		Items: items,
		Meta:  lago.Meta{CurrentPage: current, TotalPages: total},
	}

	if current < total {
		resp.Meta.NextPage = lago.Ptr(current + 1)
	}

	return resp
}

func TestCollectAll(t *testing.T) {
	t.Parallel()

	t.Run("follows next_page", func(t *testing.T) {
		t.Parallel()

		var requested []int

		items, err := lago.CollectAll(context.Background(), 0, func(_ context.Context, page int) (*lago.ListResponse[string], error) {
			requested = append(requested, page)

			return pageOf([]string{string(rune('a' + page - 1))}, page, 3), nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, items)
		assert.Equal(t, []int{1, 2, 3}, requested)
	})

	t.Run("respects the page cap", func(t *testing.T) {
		t.Parallel()

		calls := 0

		items, err := lago.CollectAll(context.Background(), 2, func(_ context.Context, page int) (*lago.ListResponse[string], error) {
			calls++

			return pageOf([]string{"x"}, page, 100), nil
		})

		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when next_page does not advance", func(t *testing.T) {
		t.Parallel()

		calls := 0

		_, err := lago.CollectAll(context.Background(), 0, func(_ context.Context, _ int) (*lago.ListResponse[string], error) {
			calls++

			return &lago.ListResponse[string]{Meta: lago.Meta{CurrentPage: 1, NextPage: lago.Ptr(1)}}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns collected items with the error", func(t *testing.T) {
		t.Parallel()

		boom := lago.NewAPIError(500, "boom")

		items, err := lago.CollectAll(context.Background(), 0, func(_ context.Context, page int) (*lago.ListResponse[string], error) {
			if page == 2 {
				return nil, boom
			}

			return pageOf([]string{"first"}, page, 5), nil
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
		assert.Contains(t, err.Error(), "page 2")
		assert.Equal(t, []string{"first"}, items)
	})
}
