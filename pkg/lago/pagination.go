package lago

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lago-client/internal/constants"
)

// PageFunc fetches one page of a list endpoint.
type PageFunc[T any] func(ctx context.Context, page int) (*ListResponse[T], error)

// CollectAll follows meta.next_page from page 1 and returns every item.
// maxPages caps the walk; zero or less uses the default cap.
func CollectAll[T any](ctx context.Context, maxPages int, fetch PageFunc[T]) ([]T, error) {
	if maxPages <= 0 {
		maxPages = constants.MaxPages
	}

	var items []T

	page := 1
	for range maxPages {
		resp, err := fetch(ctx, page)
		if err != nil {
			return items, fmt.Errorf("fetching page %d: %w", page, err)
		}

		items = append(items, resp.Items...)

		if resp.Meta.NextPage == nil || *resp.Meta.NextPage <= page {
			break
		}

		page = *resp.Meta.NextPage
	}

	return items, nil
}
