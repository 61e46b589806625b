package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/inventory"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

var operador = entity.Actor{ID: "u1", Nome: "Operador", Email: "op@empresa.com"}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := inventory.NewLedgerUseCase(s, nil, logger.Nop()).WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	return uc, s
}

func draft(codigo string, qty int, col string, floor int) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Codigo:     codigo,
		Nome:       "Tarugo " + codigo,
		Tipo:       "tarugo",
		Quantidade: qty,
		Posicao:    dto.PositionDTO{Coluna: col, Andar: floor},
	}
}

func movements(t *testing.T, s *memory.Store) []*entity.StockMovement {
	t.Helper()
	ms, _, err := s.Repos().Movements.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return ms
}

func TestAddItem_DisponivelPadraoEMovimentoEntrada(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()

	it, err := uc.AddItem(ctx, operador, draft("TR-6063", 10, "A", 1))
	require.NoError(t, err)
	assert.Equal(t, 10, it.QuantidadeDisponivel)
	assert.Equal(t, entity.ItemStatusDisponivel, it.Status)
	assert.Equal(t, "A1", it.Position.String())

	ms := movements(t, s)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementEntrada, ms[0].Tipo)
	assert.Equal(t, 10, ms[0].Quantidade)
	assert.Equal(t, it.ID, ms[0].ItemID)
	assert.Equal(t, "Operador", ms[0].UserName)
}

func TestAddItem_Validacoes(t *testing.T) {
	tests := []struct {
		name  string
		in    dto.CreateItemRequest
		check func(t *testing.T, err error)
	}{
		{
			name: "quantidade zero",
			in:   draft("X", 0, "A", 1),
			check: func(t *testing.T, err error) {
				var v *domain.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Equal(t, "quantidade", v.Field)
			},
		},
		{
			name: "soma dos baldes diferente do total",
			in: func() dto.CreateItemRequest {
				d := draft("X", 10, "A", 1)
				d.QuantidadeDisponivel = intp(5)
				d.QuantidadeAvaria = intp(2)
				return d
			}(),
			check: func(t *testing.T, err error) {
				var qm *domain.QuantityMismatchError
				require.ErrorAs(t, err, &qm)
				assert.Equal(t, 7, qm.Sum)
				assert.Equal(t, 10, qm.Total)
			},
		},
		{
			name: "posição fora da torre",
			in:   draft("X", 1, "Z", 1),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			},
		},
		{
			name: "andar fora da torre",
			in:   draft("X", 1, "A", 9),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			},
		},
		{
			name: "tipo inválido",
			in: func() dto.CreateItemRequest {
				d := draft("X", 1, "A", 1)
				d.Tipo = "chapa"
				return d
			}(),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			},
		},
		{
			name: "codigo vazio",
			in:   draft("  ", 1, "A", 1),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, s := newLedger(t)
			_, err := uc.AddItem(context.Background(), operador, tt.in)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, movements(t, s))
		})
	}
}

func TestAddItem_BaldesInformados_StatusDerivado(t *testing.T) {
	uc, _ := newLedger(t)
	d := draft("AV-1", 4, "B", 2)
	d.QuantidadeDisponivel = intp(0)
	d.QuantidadeAvaria = intp(4)

	it, err := uc.AddItem(context.Background(), operador, d)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusAvaria, it.Status)
}

func TestAddBatch_TudoOuNada(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()

	_, err := uc.AddBatch(ctx, operador, []dto.CreateItemRequest{
		draft("L1", 5, "A", 1),
		draft("L2", 5, "A", 2),
		draft("L3", 5, "Q", 1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	items, total, err := uc.Search(ctx, repository.ItemFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.Empty(t, movements(t, s))

	items, err = uc.AddBatch(ctx, operador, []dto.CreateItemRequest{
		draft("L1", 5, "A", 1),
		draft("L2", 3, "A", 2),
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, movements(t, s), 2)
}

func TestAddBatch_Vazio(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.AddBatch(context.Background(), operador, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_RevalidaInvarianteERecalculaStatus(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("U1", 10, "C", 3))
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, operador, it.ID, dto.UpdateItemRequest{Quantidade: intp(12)})
	var qm *domain.QuantityMismatchError
	require.ErrorAs(t, err, &qm)

	got, err := uc.UpdateItem(ctx, operador, it.ID, dto.UpdateItemRequest{
		QuantidadeDisponivel: intp(6),
		QuantidadeAvaria:     intp(4),
		Nome:                 strp("Tarugo revisado"),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got.QuantidadeDisponivel)
	assert.Equal(t, 4, got.QuantidadeAvaria)
	assert.Equal(t, "Tarugo revisado", got.Nome)
	assert.Equal(t, entity.ItemStatusDisponivel, got.Status)

	got, err = uc.UpdateItem(ctx, operador, it.ID, dto.UpdateItemRequest{
		QuantidadeDisponivel: intp(0),
		QuantidadeAvaria:     intp(10),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusAvaria, got.Status)

	assert.Len(t, movements(t, s), 1, "edição não gera movimentação")
}

func TestUpdateItem_NaoEncontrado(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.UpdateItem(context.Background(), operador, "nope", dto.UpdateItemRequest{Nome: strp("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_NaoBaixaReservaDeOrdemAberta(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("R1", 10, "D", 1))
	require.NoError(t, err)

	// reserva feita por uma ordem aberta
	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		cur, err := r.Items.GetForUpdate(ctx, it.ID)
		if err != nil {
			return err
		}
		if err := cur.Reserve(4); err != nil {
			return err
		}
		if err := r.Items.Update(ctx, cur); err != nil {
			return err
		}
		return r.Ordens.Create(ctx, &entity.OrdemSaida{
			ID: "o1", NumeroOrdem: "OS-2026-00001", Status: entity.OrdemEmSeparacao,
			Itens: []entity.OrdemSaidaItem{{ID: "l1", OrdemID: "o1", ItemID: it.ID, Quantidade: 4}},
		})
	}))

	_, err = uc.UpdateItem(ctx, operador, it.ID, dto.UpdateItemRequest{
		QuantidadeDisponivel: intp(8),
		QuantidadeReservada:  intp(2),
	})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "quantidade_reservada", v.Field)
}

func TestUpdateItem_TotalZeroRecusado(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("TR-1", 5, "H", 2))
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, operador, it.ID, dto.UpdateItemRequest{
		Quantidade:           intp(0),
		QuantidadeDisponivel: intp(0),
	})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "quantidade", v.Field)

	cur, err := uc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, cur.Quantidade)
	assert.Equal(t, 5, cur.QuantidadeDisponivel)

	// zerar pela retirada libera a posição
	_, deleted, err := uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 5})
	require.NoError(t, err)
	assert.True(t, deleted)
	counts, err := s.Repos().Items.CountByPosition(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts[entity.NewStoragePosition("H", 2)])
}

// Cenário D: retirada parcial e retirada total com exclusão.
func TestRemoveQuantity_ParcialEExclusao(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("Y", 3, "E", 1))
	require.NoError(t, err)

	got, deleted, err := uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 1, Observacoes: "corte"})
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 2, got.Quantidade)
	assert.Equal(t, 2, got.QuantidadeDisponivel)

	got, deleted, err = uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 2})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, got)

	_, err = uc.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ms := movements(t, s)
	require.Len(t, ms, 3)
	var saidas []int
	for _, m := range ms {
		if m.Tipo == entity.MovementSaida {
			saidas = append(saidas, m.Quantidade)
			assert.Empty(t, m.ItemID, "vínculo removido junto com o item")
			assert.Equal(t, "Y", m.Codigo)
		}
	}
	assert.ElementsMatch(t, []int{1, 2}, saidas)
}

// Cenário E: retirada maior que o estoque não altera nada.
func TestRemoveQuantity_EstoqueInsuficiente(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("E1", 10, "F", 1))
	require.NoError(t, err)

	_, _, err = uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 15})
	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 5, ins.Shortfall())

	cur, err := uc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, cur.Quantidade)
	assert.Len(t, movements(t, s), 1)
}

func TestRemoveQuantity_QuantidadeForaDaFaixa(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	it, err := uc.AddItem(ctx, operador, draft("FX", 4, "F", 2))
	require.NoError(t, err)

	for _, qty := range []int{0, -2, 5} {
		_, _, err := uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: qty})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "quantidade %d", qty)
	}
	cur, err := uc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, cur.Quantidade)
}

func TestRemoveQuantity_BaldeAvaria(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	d := draft("AV", 10, "G", 1)
	d.QuantidadeDisponivel = intp(7)
	d.QuantidadeAvaria = intp(3)
	it, err := uc.AddItem(ctx, operador, d)
	require.NoError(t, err)

	_, _, err = uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 4, Balde: "avaria"})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _, err := uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 3, Balde: "avaria"})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantidade)
	assert.Equal(t, 7, got.QuantidadeDisponivel)
	assert.Zero(t, got.QuantidadeAvaria)
}

func TestRemoveQuantity_NaoTocaReservada(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	d := draft("RS", 5, "H", 1)
	d.QuantidadeDisponivel = intp(1)
	d.QuantidadeReservada = intp(4)
	it, err := uc.AddItem(ctx, operador, d)
	require.NoError(t, err)

	_, _, err = uc.RemoveQuantity(ctx, operador, it.ID, dto.RemoveQuantityRequest{Quantidade: 2})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransfer(t *testing.T) {
	uc, s := newLedger(t)
	ctx := context.Background()
	a, err := uc.AddItem(ctx, operador, draft("T1", 2, "A", 1))
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, operador, draft("T2", 2, "A", 2))
	require.NoError(t, err)

	_, err = uc.Transfer(ctx, operador, a.ID, entity.NewStoragePosition("A", 2))
	var occ *domain.PositionOccupiedError
	require.ErrorAs(t, err, &occ)
	assert.Equal(t, []string{"A2"}, occ.Positions)

	_, err = uc.Transfer(ctx, operador, a.ID, entity.NewStoragePosition("A", 7))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Transfer(ctx, operador, a.ID, entity.NewStoragePosition("b", 4))
	require.NoError(t, err)
	assert.Equal(t, "B4", got.Position.String())

	_, err = uc.Transfer(ctx, operador, a.ID, entity.NewStoragePosition("B", 4))
	require.NoError(t, err, "mesma posição é permitida")
	assert.Len(t, movements(t, s), 2)
}

func TestSearch_SemAcentoEFiltros(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	d := draft("TR-100", 2, "A", 1)
	d.Acabamento = "Escovação"
	_, err := uc.AddItem(ctx, operador, d)
	require.NoError(t, err)
	l := draft("LG-200", 2, "C", 1)
	l.Tipo = "lingote"
	_, err = uc.AddItem(ctx, operador, l)
	require.NoError(t, err)

	items, total, err := uc.Search(ctx, repository.ItemFilter{Search: "escovacao"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "TR-100", items[0].Codigo)

	items, total, err = uc.Search(ctx, repository.ItemFilter{Tipo: entity.ItemTypeLingote})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "LG-200", items[0].Codigo)

	_, total, err = uc.Search(ctx, repository.ItemFilter{Column: "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
