package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNextNumber_HistorialVacio(t *testing.T) {
	out, err := run(t, "next-number", "--type", "NC")
	require.NoError(t, err)
	assert.Equal(t, "NC-1001\n", out)
}

func TestNextNumber_TipoInvalido(t *testing.T) {
	_, err := run(t, "next-number", "--type", "XX")
	assert.Error(t, err)
}

func TestSeed_ListaUsuarios(t *testing.T) {
	t.Setenv("AUTH_DEFAULT_USERS", "jv@hashrate.space,fb@hashrate.space")
	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "jv@hashrate.space\tadmin_a")
	assert.Contains(t, out, "fb@hashrate.space\tadmin_b")
}

func TestClientsImport_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padron.csv")
	require.NoError(t, os.WriteFile(path, []byte("codigo,nombre\nA1,Acme\n,Sin código\n"), 0o600))

	out, err := run(t, "clients", "import", path, "--encoding", "utf-8")
	require.NoError(t, err)
	assert.Contains(t, out, "creados: 1, actualizados: 0, con error: 1")
	assert.Contains(t, out, "fila 3")
}

func TestExport_EscribeLibro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historial.xlsx")
	_, err := run(t, "export", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Historial", f.GetSheetName(0))
}

func TestMigrateDown_PasosInvalidos(t *testing.T) {
	_, err := run(t, "migrate", "down", "cero")
	assert.Error(t, err)
}
