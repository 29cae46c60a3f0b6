package lib

import (
	"testing"

	"github.com/boltdb/bolt"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary(t *testing.T) {
	root := t.TempDir()

	l, err := NewLibrary(root)
	require.NoError(t, err)
	assert.Equal(t, root, l.Root())

	m, err := Parse(sample)
	require.NoError(t, err)

	entry, err := l.Add("sample.g85", m)
	require.NoError(t, err)
	assert.Equal(t, "A1.2", entry.LotId)
	assert.Equal(t, "WIDGET", entry.ProductId)
	assert.Equal(t, "7", entry.SubstrateNumber)
	assert.Equal(t, 3, entry.Rows)
	assert.Equal(t, 4, entry.Columns)
	assert.Equal(t, 1, entry.Defects)

	other, err := l.Add("blank.g85", fill(2, 2, Pass))
	require.NoError(t, err)
	assert.NotEqual(t, entry.ID, other.ID)

	got, err := l.Get(entry.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("stored map mismatch (-want +got):\n%s", diff)
	}

	blank, err := l.Get(other.ID)
	require.NoError(t, err)
	assert.NotNil(t, blank.Defects)
	blank.Set(Coord{X: 0, Y: 0}, Defect, "")

	entries, err := l.Entries()
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"sample.g85", "blank.g85"}, names)

	found, err := l.Find("widget")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entry.ID, found[0].ID)

	require.NoError(t, l.Delete(entry.ID))
	_, err = l.Get(entry.ID)
	assert.Error(t, err)
	_, err = l.Entry(entry.ID)
	assert.Error(t, err)

	found, err = l.Find("widget")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, l.Close())

	l, err = NewLibrary(root)
	require.NoError(t, err)
	defer l.Close()

	entries, err = l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.ID, entries[0].ID)
}

func TestLibraryAddRollsBackWhenIndexFails(t *testing.T) {
	l, err := NewLibrary(t.TempDir())
	require.NoError(t, err)
	defer l.db.Close()

	require.NoError(t, l.index.Close())

	_, err = l.Add("blank.g85", fill(2, 2, Pass))
	require.Error(t, err)

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = l.db.View(func(tx *bolt.Tx) error {
		assert.Equal(t, 0, tx.Bucket(MAPS_BKT).Stats().KeyN)
		return nil
	})
	require.NoError(t, err)
}
