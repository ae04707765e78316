package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeLatin1CSV writes a directory extract the way the secretariat exports
// it: latin1 bytes, semicolon separators, header row first.
func writeLatin1CSV(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "escolas.csv")
	var data []byte
	for _, r := range rows {
		data = append(data, r...)
		data = append(data, '\n')
	}
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad(t *testing.T) {
	// "São Vicente" with a latin1 ã (0xE3), not UTF-8.
	path := writeLatin1CSV(t, []string{
		"CODIGO;UF;MUNICIPIO;NOME",
		"351234;SP;S\xe3o Vicente;EM PROF JO\xc3O SILVA",
		"355678;SP;Santos;EM DR CARLOS PRADO",
		"malformed line without semicolons",
	})

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	results := d.Search("joão", 0)
	require.Len(t, results, 1)
	assert.Equal(t, "351234", results[0].Code)
	assert.Equal(t, "São Vicente", results[0].City)
	assert.Equal(t, "EM PROF JOÃO SILVA - São Vicente/SP", results[0].Label())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	rows := []string{"CODIGO;UF;MUNICIPIO;NOME"}
	for i := 0; i < 60; i++ {
		rows = append(rows, fmt.Sprintf("%06d;SP;Santos;EM UNIDADE %02d", i, i))
	}
	path := writeLatin1CSV(t, rows)

	d, err := Load(path)
	require.NoError(t, err)

	// Case-insensitive substring match.
	assert.Len(t, d.Search("unidade 07", 0), 1)

	// Default cap is 50.
	assert.Len(t, d.Search("EM", 0), 50)
	assert.Len(t, d.Search("EM", 10), 10)

	// Blank queries return nothing rather than the whole directory.
	assert.Nil(t, d.Search("   ", 0))
	assert.Empty(t, d.Search("inexistente", 0))
}
