package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
)

// colunas aceitas na planilha de carga inicial; codigo, tipo, quantidade, coluna e andar são obrigatórias.
var requiredHeaders = []string{"codigo", "tipo", "quantidade", "coluna", "andar"}

// readItemsCSV lê a planilha exportada do Excel (separador ';'). Arquivos fora de UTF-8 são
// tratados como Windows-1252.
func readItemsCSV(raw []byte) ([]dto.CreateItemRequest, error) {
	var src io.Reader = strings.NewReader(string(raw))
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}
	r := csv.NewReader(src)
	r.Comma = ';'
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cabeçalho: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("coluna %q ausente no cabeçalho", h)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateItemRequest
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("linha %d: %w", line, err)
		}
		if get(rec, "codigo") == "" {
			continue
		}
		qty, err := strconv.Atoi(get(rec, "quantidade"))
		if err != nil {
			return nil, fmt.Errorf("linha %d: quantidade inválida %q", line, get(rec, "quantidade"))
		}
		floor, err := strconv.Atoi(get(rec, "andar"))
		if err != nil {
			return nil, fmt.Errorf("linha %d: andar inválido %q", line, get(rec, "andar"))
		}
		out = append(out, dto.CreateItemRequest{
			Codigo:      get(rec, "codigo"),
			Nome:        get(rec, "nome"),
			Tipo:        strings.ToLower(get(rec, "tipo")),
			Quantidade:  qty,
			Posicao:     dto.PositionDTO{Coluna: strings.ToUpper(get(rec, "coluna")), Andar: floor},
			Acabamento:  get(rec, "acabamento"),
			Tempera:     strings.ToUpper(get(rec, "tempera")),
			LoteID:      get(rec, "lote_id"),
			Usina:       get(rec, "usina"),
			Observacoes: get(rec, "observacoes"),
		})
	}
	return out, nil
}
