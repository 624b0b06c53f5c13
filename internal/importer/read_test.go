package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_SpanishHeaders(t *testing.T) {
	in := strings.Join([]string{
		"Nombre Entidad,Indicador,Acción Recomendada",
		"Alcaldía de Pasto,IND-3,Actualizar el manual",
		"Gobernación de Nariño,IND-4,",
	}, "\n")

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, PrefillRow{Entity: "Alcaldía de Pasto", Indicator: "IND-3", Action: "Actualizar el manual", Line: 2}, rows[0])
	assert.Equal(t, "Gobernación de Nariño", rows[1].Entity)
	assert.Empty(t, rows[1].Action)
	assert.Equal(t, 3, rows[1].Line)
}

func TestReadCSV_StripsBOMAndSkipsBlankRows(t *testing.T) {
	in := "\uFEFFentidad,indicador\n" +
		"Alcaldía,IND-1\n" +
		",\n" +
		"Gobernación,IND-2\n"

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alcaldía", rows[0].Entity)
	// Blank rows are dropped but line numbers still count them.
	assert.Equal(t, 4, rows[1].Line)
}

func TestReadCSV_MissingRequiredColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("entidad,accion\nAlcaldía,Hacer algo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indicator")
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nombre Entidad", "nombreentidad"},
		{"NOMBRE-ENTIDAD", "nombreentidad"},
		{"nombre_entidad", "nombreentidad"},
		{"Acción", "accion"},
		{"  Indicador  ", "indicador"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeader(tt.in), tt.in)
	}
}

func TestReadFile_RejectsUnknownExtension(t *testing.T) {
	_, err := ReadFile("prefill.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported prefill format")
}
