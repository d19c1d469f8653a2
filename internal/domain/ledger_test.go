package domain

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AppendKeepsOrder(t *testing.T) {
	ledger := NewLedger("obj", 0)

	first, err := ledger.Append("a.o")
	require.NoError(t, err)
	second, err := ledger.Append("sub/b.o")
	require.NoError(t, err)

	assert.Equal(t, "obj/a.o", first)
	assert.Equal(t, "obj/sub/b.o", second)
	assert.Equal(t, []string{"obj/a.o", "obj/sub/b.o"}, ledger.Entries())
	assert.Equal(t, "obj/a.o obj/sub/b.o", ledger.Render())
	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_Empty(t *testing.T) {
	ledger := NewLedger("obj", 0)

	assert.Equal(t, "", ledger.Render())
	assert.Empty(t, ledger.Entries())
	assert.Equal(t, 0, ledger.Len())
}

func TestLedger_EntriesIsACopy(t *testing.T) {
	ledger := NewLedger("obj", 0)
	_, err := ledger.Append("a.o")
	require.NoError(t, err)

	entries := ledger.Entries()
	entries[0] = "changed"

	assert.Equal(t, "obj/a.o", ledger.Render())
}

func TestLedger_UnboundedGrowsPastOldBound(t *testing.T) {
	ledger := NewLedger("obj", 0)

	for i := range 2000 {
		_, err := ledger.Append(fmt.Sprintf("unit_%04d.o", i))
		require.NoError(t, err)
	}

	assert.Greater(t, len(ledger.Render()), 8192)
	assert.Equal(t, 2000, ledger.Len())
}

func TestLedger_Limit(t *testing.T) {
	// "obj/a.o" is 7 bytes, " obj/b.o" adds 8.
	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{"exact fit", 15, false},
		{"one byte short", 14, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger("obj", tt.limit)

			_, err := ledger.Append("a.o")
			require.NoError(t, err)

			_, err = ledger.Append("b.o")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "obj/a.o obj/b.o", ledger.Render())

				return
			}

			require.ErrorIs(t, err, ErrLedgerFull)
			assert.Equal(t, "obj/a.o", ledger.Render(), "a rejected append leaves the ledger unchanged")
			assert.Equal(t, 1, ledger.Len())
		})
	}
}

func TestLedger_ConcurrentAppends(t *testing.T) {
	ledger := NewLedger("obj", 0)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := ledger.Append(fmt.Sprintf("%d.o", i))
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, ledger.Len())

	for i := range 50 {
		assert.Contains(t, ledger.Entries(), fmt.Sprintf("obj/%d.o", i))
	}
}
