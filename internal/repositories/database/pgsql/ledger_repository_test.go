package pgsql

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntryIDSortsInJournalOrder(t *testing.T) {
	transactionID := uuid.NewString()

	ids := make([]string, 12)
	for i := range ids {
		ids[i] = entryID(transactionID, i)
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	assert.Equal(t, ids, sorted, "entry IDs must sort lexicographically in journal order")
	assert.Equal(t, transactionID+"-0000", ids[0])
	assert.Equal(t, transactionID+"-0010", ids[10])
}
