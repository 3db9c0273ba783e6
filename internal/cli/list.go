package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/query"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// listFlags holds the options shared by every list subcommand.
type listFlags struct {
	where string
	sort  string
	limit int
}

func (f *listFlags) register(cmd *cobra.Command, fields []string) {
	cmd.Flags().StringVar(&f.where, "where", "", "CEL filter expression, e.g. 'name.startsWith(\"A\")'")
	cmd.Flags().StringVar(&f.sort, "sort", "", fmt.Sprintf("sort field, prefix with - to reverse (%s)", strings.Join(fields, ", ")))
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of results (0 = no limit)")
}

// apply installs the filter and sort on the book view through setFilter and
// setSort and returns the records v then shows, truncated to the limit.
func apply[T types.Record[T]](
	f listFlags,
	kind query.Kind[T],
	v *view.View[T],
	setFilter func(view.Predicate[T]),
	setSort func(view.Comparator[T]),
) ([]T, error) {
	if f.limit < 0 {
		return nil, userErrorf("--limit must not be negative")
	}
	pred, err := query.Compile(kind, f.where)
	if err != nil {
		return nil, err
	}
	cmp, err := query.Comparator(kind, f.sort)
	if err != nil {
		return nil, err
	}
	setFilter(pred)
	setSort(cmp)

	items := v.Items()
	if f.limit > 0 && len(items) > f.limit {
		items = items[:f.limit]
	}
	return items, nil
}

func joinIDs[T ~string](ids []T) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = string(id)
	}
	return strings.Join(s, ",")
}
