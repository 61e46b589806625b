package entity

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// Limites de andar aceitos pela torre.
const (
	MinFloor = 1
	MaxFloor = 99
)

// StoragePosition endereço físico na torre: coluna (letra) + andar.
type StoragePosition struct {
	Column string
	Floor  int
}

// NewStoragePosition normaliza a coluna para maiúscula.
func NewStoragePosition(column string, floor int) StoragePosition {
	return StoragePosition{Column: strings.ToUpper(strings.TrimSpace(column)), Floor: floor}
}

// String formato de exibição, ex. "A3".
func (p StoragePosition) String() string {
	return p.Column + strconv.Itoa(p.Floor)
}

// Compare ordena por coluna e depois por andar.
func (p StoragePosition) Compare(o StoragePosition) int {
	if c := strings.Compare(p.Column, o.Column); c != 0 {
		return c
	}
	return p.Floor - o.Floor
}

// TowerConfig mapeamento coluna -> andares existentes.
type TowerConfig map[string][]int

// DefaultTowerConfig colunas A–H com andares 1–4.
func DefaultTowerConfig() TowerConfig {
	cfg := make(TowerConfig, 8)
	for c := 'A'; c <= 'H'; c++ {
		cfg[string(c)] = []int{1, 2, 3, 4}
	}
	return cfg
}

// Columns colunas em ordem alfabética.
func (c TowerConfig) Columns() []string {
	return slices.Sorted(maps.Keys(c))
}

// Contains indica se a posição existe na configuração.
func (c TowerConfig) Contains(p StoragePosition) bool {
	floors, ok := c[p.Column]
	if !ok {
		return false
	}
	return slices.Contains(floors, p.Floor)
}

// Positions percorre as posições válidas em ordem (coluna, andar). Pode ser reiniciada.
func (c TowerConfig) Positions() iter.Seq[StoragePosition] {
	return func(yield func(StoragePosition) bool) {
		for _, col := range c.Columns() {
			floors := slices.Clone(c[col])
			slices.Sort(floors)
			for _, f := range floors {
				if !yield(StoragePosition{Column: col, Floor: f}) {
					return
				}
			}
		}
	}
}

// PositionList posições válidas como slice.
func (c TowerConfig) PositionList() []StoragePosition {
	return slices.Collect(c.Positions())
}

// Clone cópia profunda.
func (c TowerConfig) Clone() TowerConfig {
	out := make(TowerConfig, len(c))
	for k, v := range c {
		out[k] = slices.Clone(v)
	}
	return out
}

// Removed posições presentes em c que deixam de existir em next.
func (c TowerConfig) Removed(next TowerConfig) []StoragePosition {
	var out []StoragePosition
	for p := range c.Positions() {
		if !next.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Normalize valida e devolve uma cópia com colunas em maiúscula e andares únicos e ordenados.
func (c TowerConfig) Normalize() (TowerConfig, error) {
	if len(c) == 0 {
		return nil, domain.NewValidation("torre", "informe ao menos uma coluna")
	}
	out := make(TowerConfig, len(c))
	for rawCol, floors := range c {
		col := strings.ToUpper(strings.TrimSpace(rawCol))
		if len(col) != 1 || col[0] < 'A' || col[0] > 'Z' {
			return nil, domain.NewValidation("coluna", fmt.Sprintf("coluna %q deve ser uma única letra de A a Z", rawCol))
		}
		if _, dup := out[col]; dup {
			return nil, domain.NewValidation("coluna", fmt.Sprintf("coluna %s repetida", col))
		}
		if len(floors) == 0 {
			return nil, domain.NewValidation("andares", fmt.Sprintf("coluna %s sem andares", col))
		}
		norm := make([]int, 0, len(floors))
		for _, f := range floors {
			if f < MinFloor || f > MaxFloor {
				return nil, domain.NewValidation("andares", fmt.Sprintf("andar %d fora do intervalo %d-%d", f, MinFloor, MaxFloor))
			}
			norm = append(norm, f)
		}
		slices.Sort(norm)
		out[col] = slices.Compact(norm)
	}
	return out, nil
}

// ParseFloors interpreta listas como "1-4, 6, 8-9". O resultado sai ordenado e sem repetições.
func ParseFloors(input string) ([]int, error) {
	var floors []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, isRange := strings.Cut(part, "-"); isRange {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil || start > end {
				return nil, domain.NewValidation("andares", fmt.Sprintf("intervalo inválido %q", part))
			}
			if start < MinFloor || end > MaxFloor {
				return nil, domain.NewValidation("andares", fmt.Sprintf("intervalo %q fora de %d-%d", part, MinFloor, MaxFloor))
			}
			for f := start; f <= end; f++ {
				floors = append(floors, f)
			}
			continue
		}
		f, err := strconv.Atoi(part)
		if err != nil {
			return nil, domain.NewValidation("andares", fmt.Sprintf("andar inválido %q", part))
		}
		if f < MinFloor || f > MaxFloor {
			return nil, domain.NewValidation("andares", fmt.Sprintf("andar %d fora de %d-%d", f, MinFloor, MaxFloor))
		}
		floors = append(floors, f)
	}
	if len(floors) == 0 {
		return nil, domain.NewValidation("andares", "nenhum andar informado")
	}
	slices.Sort(floors)
	return slices.Compact(floors), nil
}
