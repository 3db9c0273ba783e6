package view

import (
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
)

type row struct {
	name string
	rank int
}

func (r *row) IsSame(other *row) bool { return other != nil && r.name == other.name }
func (r *row) Equal(other *row) bool  { return other != nil && *r == *other }

func names(rows []*row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

func setup(t *testing.T) (*uniquelist.List[*row], *View[*row]) {
	t.Helper()
	l := uniquelist.New[*row]("Row")
	require.NoError(t, l.ReplaceAll([]*row{
		{name: "carol", rank: 2},
		{name: "alice", rank: 1},
		{name: "bob", rank: 2},
	}))
	return l, New(l.ReadOnly())
}

func TestViewDefaultsToInsertionOrder(t *testing.T) {
	_, v := setup(t)
	assert.Equal(t, []string{"carol", "alice", "bob"}, names(v.Items()))
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, "alice", v.At(1).name)
}

func TestViewPredicateAndComparator(t *testing.T) {
	_, v := setup(t)

	v.SetPredicate(func(r *row) bool { return strings.Contains(r.name, "o") })
	assert.Equal(t, []string{"carol", "bob"}, names(v.Items()))

	v.SetComparator(func(a, b *row) int { return cmp.Compare(a.name, b.name) })
	assert.Equal(t, []string{"bob", "carol"}, names(v.Items()))

	v.SetPredicate(nil)
	assert.Equal(t, []string{"alice", "bob", "carol"}, names(v.Items()))
}

func TestViewSortIsStable(t *testing.T) {
	_, v := setup(t)
	v.SetComparator(func(a, b *row) int { return cmp.Compare(a.rank, b.rank) })
	assert.Equal(t, []string{"alice", "carol", "bob"}, names(v.Items()))
}

func TestViewTracksSourceMutations(t *testing.T) {
	l, v := setup(t)
	v.SetPredicate(func(r *row) bool { return r.rank == 2 })
	require.Len(t, v.Items(), 2)

	before := v.Version()
	require.NoError(t, l.Add(&row{name: "dave", rank: 2}))
	assert.NotEqual(t, before, v.Version())
	assert.Equal(t, []string{"carol", "bob", "dave"}, names(v.Items()))

	require.NoError(t, l.Set(&row{name: "carol", rank: 2}, &row{name: "carol", rank: 5}))
	assert.Equal(t, []string{"bob", "dave"}, names(v.Items()))
}

func TestViewItemsIsACopy(t *testing.T) {
	_, v := setup(t)
	items := v.Items()
	items[0] = &row{name: "mallory"}
	assert.Equal(t, "carol", v.At(0).name)
}

func TestViewSubscribe(t *testing.T) {
	l, v := setup(t)
	calls := 0
	cancel := v.Subscribe(func() { calls++ })

	require.NoError(t, l.Add(&row{name: "erin"}))
	v.SetComparator(func(a, b *row) int { return cmp.Compare(a.name, b.name) })
	assert.Equal(t, 2, calls)

	cancel()
	require.NoError(t, l.Add(&row{name: "frank"}))
	v.SetPredicate(nil)
	assert.Equal(t, 2, calls)
}
