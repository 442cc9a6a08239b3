package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillium/salescope/internal/common"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadSalesData(t *testing.T) {
	t.Run("skips header and blank lines", func(t *testing.T) {
		path := writeTempFile(t, []byte(
			"TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n"+
				"T001|2024-01-01|P100|Phone|2|500.00|C001|North\n"+
				"\n"+
				"   \n"+
				"T002|2024-01-02|P101|Laptop|1|1200.50|C002|South\n"))

		lines, err := ReadSalesData(path)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "T001|2024-01-01|P100|Phone|2|500.00|C001|North", lines[0])
		assert.Equal(t, "T002|2024-01-02|P101|Laptop|1|1200.50|C002|South", lines[1])
	})

	t.Run("decodes latin-1 content", func(t *testing.T) {
		// 0xE9 is é in Latin-1 and invalid on its own in UTF-8.
		content := []byte("header\nT001|2024-01-01|P100|Caf\xe9 Set|2|500.00|C001|North\n")
		path := writeTempFile(t, content)

		lines, err := ReadSalesData(path)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "Café Set")
	})

	t.Run("missing file reports error with empty result", func(t *testing.T) {
		lines, err := ReadSalesData(filepath.Join(t.TempDir(), "nope.txt"))
		require.ErrorIs(t, err, common.ErrInputFileMissing)
		assert.Empty(t, lines)
	})

	t.Run("header-only file yields no lines", func(t *testing.T) {
		path := writeTempFile(t, []byte("TransactionID|Date|ProductID\n"))

		lines, err := ReadSalesData(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("empty file yields no lines", func(t *testing.T) {
		path := writeTempFile(t, nil)

		lines, err := ReadSalesData(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
