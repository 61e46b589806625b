package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
)

func TestReadItemsCSV_UTF8(t *testing.T) {
	raw := "\ufeffCodigo;Nome;Tipo;Quantidade;Coluna;Andar;Tempera\n" +
		"TR-6063;Tarugo 6063;Tarugo;12;a;3;t6\n" +
		";;;;;;\n" +
		"LG-1;Lingote;lingote;4;B;1;\n"
	items, err := readItemsCSV([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "TR-6063", items[0].Codigo)
	assert.Equal(t, "tarugo", items[0].Tipo)
	assert.Equal(t, 12, items[0].Quantidade)
	assert.Equal(t, dto.PositionDTO{Coluna: "A", Andar: 3}, items[0].Posicao)
	assert.Equal(t, "T6", items[0].Tempera)
	assert.Equal(t, "lingote", items[1].Tipo)
}

func TestReadItemsCSV_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(
		"codigo;nome;tipo;quantidade;coluna;andar;usina\nTR-1;Tarugo extrusão;tarugo;1;C;2;Usina São João\n"))
	require.NoError(t, err)

	items, err := readItemsCSV(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tarugo extrusão", items[0].Nome)
	assert.Equal(t, "Usina São João", items[0].Usina)
}

func TestReadItemsCSV_Erros(t *testing.T) {
	_, err := readItemsCSV([]byte("codigo;tipo;quantidade;coluna\nX;tarugo;1;A\n"))
	assert.ErrorContains(t, err, `"andar"`)

	_, err = readItemsCSV([]byte("codigo;tipo;quantidade;coluna;andar\nX;tarugo;muitos;A;1\n"))
	assert.ErrorContains(t, err, "linha 2")
}
