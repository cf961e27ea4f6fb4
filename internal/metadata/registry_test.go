package metadata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

func TestRegistry_AttachAndLookup(t *testing.T) {
	r := NewRegistry()
	bar := pgfix.NewCaseID("Foo", "bar")

	r.AttachGroup("Foo", pgfix.MetadataItem{Kind: pgfix.KindCleanupScript, Values: []string{"scripts/class-level.sql"}})
	r.AttachCase(bar, pgfix.MetadataItem{Kind: pgfix.KindCleanupScript, Values: []string{"scripts/method-level.sql"}})

	group := r.GroupItems(pgfix.KindCleanupScript, "Foo")
	require.Len(t, group, 1)
	assert.Equal(t, []string{"scripts/class-level.sql"}, group[0].Values)

	cases := r.CaseItems(pgfix.KindCleanupScript, bar)
	require.Len(t, cases, 1)
	assert.Equal(t, []string{"scripts/method-level.sql"}, cases[0].Values)

	assert.Empty(t, r.GroupItems(pgfix.KindDataSet, "Foo"), "other kinds are independent")
	assert.Empty(t, r.CaseItems(pgfix.KindCleanupScript, pgfix.NewCaseID("Foo", "baz")))
}

func TestRegistry_DeclarationOrder(t *testing.T) {
	r := NewRegistry()
	r.AddCase(pgfix.NewCaseID("B", "two"))
	r.AddCase(pgfix.NewCaseID("A", "one"))
	r.AddCase(pgfix.NewCaseID("B", "one"))
	r.AddCase(pgfix.NewCaseID("B", "two"))
	r.AddGroup("C")

	assert.Equal(t, []pgfix.GroupID{"B", "A", "C"}, r.Groups())
	assert.Equal(t, []pgfix.CaseID{
		pgfix.NewCaseID("B", "two"),
		pgfix.NewCaseID("B", "one"),
	}, r.Cases("B"))
	assert.Empty(t, r.Cases("C"))
}

func TestRegistry_DuplicatesAreKept(t *testing.T) {
	r := NewRegistry()
	item := pgfix.MetadataItem{Kind: pgfix.KindDataSet, Values: []string{"users.yml"}}
	r.AttachGroup("Foo", item)
	r.AttachGroup("Foo", item)

	assert.Len(t, r.GroupItems(pgfix.KindDataSet, "Foo"), 2)
}

func TestRegistry_ItemsAreCopied(t *testing.T) {
	r := NewRegistry()
	values := []string{"a.sql"}
	r.AttachGroup("Foo", pgfix.MetadataItem{
		Kind:       pgfix.KindCleanupScript,
		Values:     values,
		Attributes: map[string]string{"k": "v"},
	})
	values[0] = "mutated.sql"

	got := r.GroupItems(pgfix.KindCleanupScript, "Foo")
	assert.Equal(t, "a.sql", got[0].Values[0])

	got[0].Values[0] = "mutated-again.sql"
	got[0].Attributes["k"] = "changed"
	again := r.GroupItems(pgfix.KindCleanupScript, "Foo")
	assert.Equal(t, "a.sql", again[0].Values[0])
	assert.Equal(t, "v", again[0].Attributes["k"])
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := NewRegistry()
	r.AttachGroup("Foo", pgfix.MetadataItem{Kind: pgfix.KindCleanupScript})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, r.GroupItems(pgfix.KindCleanupScript, "Foo"), 1)
			_ = r.Groups()
		}()
	}
	wg.Wait()
}
