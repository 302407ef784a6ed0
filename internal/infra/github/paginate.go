package github

import (
	"iter"

	gh "github.com/google/go-github/v72/github"
)

// paginate walks a list endpoint page by page, following Response.NextPage.
// Pages are fetched lazily as the sequence is consumed.
func paginate[T any](fetch func(opts gh.ListOptions) ([]T, *gh.Response, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		opts := gh.ListOptions{PerPage: perPage, Page: 1}
		for {
			items, resp, err := fetch(opts)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if resp == nil || resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}
