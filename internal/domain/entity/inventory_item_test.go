package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

func newItem(total, disp, res, av int) *entity.InventoryItem {
	it := &entity.InventoryItem{
		Codigo:               "T-1",
		Quantidade:           total,
		QuantidadeDisponivel: disp,
		QuantidadeReservada:  res,
		QuantidadeAvaria:     av,
	}
	it.RefreshStatus()
	return it
}

func assertLedger(t *testing.T, it *entity.InventoryItem) {
	t.Helper()
	require.NoError(t, it.CheckBuckets())
	assert.Equal(t, entity.DeriveStatus(it.Quantidade, it.QuantidadeDisponivel, it.QuantidadeReservada, it.QuantidadeAvaria), it.Status)
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name           string
		total, d, r, a int
		want           entity.ItemStatus
	}{
		{"tudo disponivel", 10, 10, 0, 0, entity.ItemStatusDisponivel},
		{"parcial", 10, 4, 3, 3, entity.ItemStatusDisponivel},
		{"tudo reservado", 10, 0, 10, 0, entity.ItemStatusReservado},
		{"tudo avaria", 10, 0, 0, 10, entity.ItemStatusAvaria},
		{"reservado e avaria sem disponivel", 10, 0, 4, 6, entity.ItemStatusIndisponivel},
		{"zerado", 0, 0, 0, 0, entity.ItemStatusIndisponivel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.DeriveStatus(tc.total, tc.d, tc.r, tc.a))
		})
	}
}

func TestCheckBuckets(t *testing.T) {
	assert.NoError(t, newItem(10, 5, 3, 2).CheckBuckets())

	err := newItem(10, 5, 3, 1).CheckBuckets()
	var mm *domain.QuantityMismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, 9, mm.Sum)
	assert.Equal(t, 10, mm.Total)

	assert.ErrorIs(t, newItem(10, 11, -1, 0).CheckBuckets(), domain.ErrInvalidInput)
}

func TestReserveRelease_RoundTrip(t *testing.T) {
	it := newItem(10, 10, 0, 0)

	require.NoError(t, it.Reserve(4))
	assert.Equal(t, 6, it.QuantidadeDisponivel)
	assert.Equal(t, 4, it.QuantidadeReservada)
	assertLedger(t, it)

	require.NoError(t, it.Release(4))
	assert.Equal(t, 10, it.QuantidadeDisponivel)
	assert.Equal(t, 0, it.QuantidadeReservada)
	assert.Equal(t, entity.ItemStatusDisponivel, it.Status)
	assertLedger(t, it)
}

func TestReserve_Insuficiente(t *testing.T) {
	it := newItem(10, 3, 7, 0)
	err := it.Reserve(4)

	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 1, ins.Shortfall())
	assert.Equal(t, 3, it.QuantidadeDisponivel, "falha não altera o item")
}

func TestReserve_TudoViraReservado(t *testing.T) {
	it := newItem(5, 5, 0, 0)
	require.NoError(t, it.Reserve(5))
	assert.Equal(t, entity.ItemStatusReservado, it.Status)
}

func TestConsume(t *testing.T) {
	it := newItem(10, 6, 4, 0)
	require.NoError(t, it.Consume(4))
	assert.Equal(t, 6, it.Quantidade)
	assert.Equal(t, 0, it.QuantidadeReservada)
	assertLedger(t, it)

	assert.ErrorIs(t, it.Consume(1), domain.ErrInsufficientStock)
}

func TestWithdraw(t *testing.T) {
	it := newItem(10, 6, 2, 2)

	require.NoError(t, it.Withdraw(entity.BucketDisponivel, 3))
	assert.Equal(t, 7, it.Quantidade)
	assertLedger(t, it)

	require.NoError(t, it.Withdraw(entity.BucketAvaria, 2))
	assert.Equal(t, 5, it.Quantidade)
	assertLedger(t, it)

	assert.ErrorIs(t, it.Withdraw(entity.BucketDisponivel, 4), domain.ErrInsufficientStock, "não usa reservadas")
	assert.ErrorIs(t, it.Withdraw(entity.BucketDisponivel, 11), domain.ErrInsufficientStock)
	assert.ErrorIs(t, it.Withdraw(entity.BucketDisponivel, 0), domain.ErrInsufficientStock)
	assert.ErrorIs(t, it.Withdraw(entity.BucketDisponivel, -1), domain.ErrInsufficientStock)
	assert.ErrorIs(t, it.Withdraw(entity.Bucket("reservada"), 1), domain.ErrInvalidInput)
}

func TestTypesValid(t *testing.T) {
	assert.True(t, entity.ItemTypeLingote.Valid())
	assert.False(t, entity.ItemType("barra").Valid())
	assert.True(t, entity.TemperaT6.Valid())
	assert.False(t, entity.Tempera("T5").Valid())
}
