package ordem_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/application/events"
	"github.com/jhoicas/estoque-tarugos/internal/application/ordem"
	"github.com/jhoicas/estoque-tarugos/internal/application/ports"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-tarugos/pkg/logger"
)

var expedicao = entity.Actor{ID: "u7", Nome: "Expedição", Email: "exp@empresa.com"}

type fixture struct {
	store *memory.Store
	uc    *ordem.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	clock := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	uc := ordem.NewUseCase(s, memory.NewSequence("OS", now), nil, logger.Nop()).WithClock(now)
	return &fixture{store: s, uc: uc}
}

// putItem item com todos os baldes em disponível.
func (f *fixture) putItem(t *testing.T, id string, qty int, col string, floor int) {
	t.Helper()
	it := &entity.InventoryItem{
		ID: id, Codigo: "COD-" + id, Tipo: entity.ItemTypeTarugo,
		Quantidade: qty, QuantidadeDisponivel: qty,
		Position: entity.NewStoragePosition(col, floor), CreatedAt: time.Now(),
	}
	it.RefreshStatus()
	require.NoError(t, f.store.Repos().Items.Create(context.Background(), it))
}

func (f *fixture) item(t *testing.T, id string) *entity.InventoryItem {
	t.Helper()
	it, err := f.store.Repos().Items.GetByID(context.Background(), id)
	require.NoError(t, err)
	return it
}

func (f *fixture) movements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	ms, _, err := f.store.Repos().Movements.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return ms
}

func (f *fixture) create(t *testing.T, lines ...dto.CreateOrdemLine) *entity.OrdemSaida {
	t.Helper()
	o, err := f.uc.CriarOrdem(context.Background(), expedicao, dto.CreateOrdemRequest{Itens: lines})
	require.NoError(t, err)
	return o
}

func line(itemID string, qty int) dto.CreateOrdemLine {
	return dto.CreateOrdemLine{ItemID: itemID, Quantidade: qty, Empresa: "Metalúrgica Sul"}
}

func assertBuckets(t *testing.T, it *entity.InventoryItem, qty, disp, res, av int) {
	t.Helper()
	require.NotNil(t, it)
	assert.Equal(t, qty, it.Quantidade, "quantidade")
	assert.Equal(t, disp, it.QuantidadeDisponivel, "disponivel")
	assert.Equal(t, res, it.QuantidadeReservada, "reservada")
	assert.Equal(t, av, it.QuantidadeAvaria, "avaria")
	assert.Equal(t, it.Quantidade, it.QuantidadeDisponivel+it.QuantidadeReservada+it.QuantidadeAvaria)
}

// Cenário A.
func TestCriarOrdem_ReservaEstoque(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 10, "A", 1)

	o := f.create(t, line("X", 4))

	assert.Equal(t, entity.OrdemEmSeparacao, o.Status)
	assert.Equal(t, "OS-2026-00001", o.NumeroOrdem)
	assert.Equal(t, expedicao.Nome, o.UsuarioNome)
	require.Len(t, o.Itens, 1)
	assert.Equal(t, "COD-X", o.Itens[0].Codigo)
	assert.Equal(t, "tarugo", o.Itens[0].Tipo)
	assert.Equal(t, "A1", o.Itens[0].Position.String())
	assertBuckets(t, f.item(t, "X"), 10, 6, 4, 0)

	ms := f.movements(t)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.MovementSaida, ms[0].Tipo)
	assert.Equal(t, "Ordem de Saída OS-2026-00001 - Em Separação", ms[0].Observacoes)

	second := f.create(t, line("X", 1))
	assert.Equal(t, "OS-2026-00002", second.NumeroOrdem)
}

// Cenário B.
func TestAtualizarStatus_CancelarDevolveEstoque(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))

	got, err := f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemCancelada)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdemCancelada, got.Status)
	assertBuckets(t, f.item(t, "X"), 10, 10, 0, 0)

	var entradas []*entity.StockMovement
	for _, m := range f.movements(t) {
		if m.Tipo == entity.MovementEntrada {
			entradas = append(entradas, m)
		}
	}
	require.Len(t, entradas, 1)
	assert.Equal(t, 4, entradas[0].Quantidade)
	assert.Contains(t, entradas[0].Observacoes, "cancelada - Item devolvido ao estoque")
}

// Cenário C.
func TestAtualizarStatus_ConcluirBaixaReservado(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))

	_, err := f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemConcluida)
	require.NoError(t, err)
	assertBuckets(t, f.item(t, "X"), 6, 6, 0, 0)
}

func TestAtualizarStatus_ConcluirTudoExcluiItem(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 10))
	assert.Equal(t, entity.ItemStatusReservado, f.item(t, "X").Status)

	_, err := f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemConcluida)
	require.NoError(t, err)
	assert.Nil(t, f.item(t, "X"))

	ms := f.movements(t)
	require.Len(t, ms, 2)
	assert.Equal(t, "Ordem de Saída OS-2026-00001 concluída", ms[0].Observacoes)
	assert.Equal(t, "COD-X", ms[0].Codigo)
	assert.Empty(t, ms[0].ItemID)
}

// Cenário D e idempotência.
func TestAtualizarStatus_RepetirOuEncerrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))

	_, err := f.uc.AtualizarStatus(ctx, expedicao, o.ID, entity.OrdemEmSeparacao)
	require.ErrorIs(t, err, domain.ErrTerminalOrder)
	assertBuckets(t, f.item(t, "X"), 10, 6, 4, 0)

	_, err = f.uc.AtualizarStatus(ctx, expedicao, o.ID, entity.OrdemConcluida)
	require.NoError(t, err)
	before := len(f.movements(t))

	for _, to := range []entity.OrdemStatus{entity.OrdemConcluida, entity.OrdemCancelada, entity.OrdemAguardandoEnvio} {
		_, err = f.uc.AtualizarStatus(ctx, expedicao, o.ID, to)
		var term *domain.TerminalOrderError
		require.ErrorAs(t, err, &term, to)
		assert.Equal(t, o.NumeroOrdem, term.NumeroOrdem)
	}
	assertBuckets(t, f.item(t, "X"), 6, 6, 0, 0)
	assert.Len(t, f.movements(t), before)
}

func TestAtualizarStatus_TodasAsTransicoes(t *testing.T) {
	all := []entity.OrdemStatus{entity.OrdemEmSeparacao, entity.OrdemAguardandoEnvio, entity.OrdemConcluida, entity.OrdemCancelada}
	path := map[entity.OrdemStatus][]entity.OrdemStatus{
		entity.OrdemEmSeparacao:     nil,
		entity.OrdemAguardandoEnvio: {entity.OrdemAguardandoEnvio},
		entity.OrdemConcluida:       {entity.OrdemConcluida},
		entity.OrdemCancelada:       {entity.OrdemCancelada},
	}
	allowed := map[[2]entity.OrdemStatus]bool{
		{entity.OrdemEmSeparacao, entity.OrdemAguardandoEnvio}: true,
		{entity.OrdemEmSeparacao, entity.OrdemConcluida}:       true,
		{entity.OrdemEmSeparacao, entity.OrdemCancelada}:       true,
		{entity.OrdemAguardandoEnvio, entity.OrdemConcluida}:   true,
		{entity.OrdemAguardandoEnvio, entity.OrdemCancelada}:   true,
	}
	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				f := newFixture(t)
				ctx := context.Background()
				f.putItem(t, "X", 10, "B", 2)
				o := f.create(t, line("X", 3))
				for _, step := range path[from] {
					_, err := f.uc.AtualizarStatus(ctx, expedicao, o.ID, step)
					require.NoError(t, err)
				}
				before := f.item(t, "X")

				_, err := f.uc.AtualizarStatus(ctx, expedicao, o.ID, to)

				if allowed[[2]entity.OrdemStatus{from, to}] {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, domain.ErrTerminalOrder)
				assert.Equal(t, before, f.item(t, "X"), "estoque intacto")
			})
		}
	}
}

func TestAtualizarStatus_AguardandoEnvioSemEfeito(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))

	_, err := f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemAguardandoEnvio)
	require.NoError(t, err)
	assertBuckets(t, f.item(t, "X"), 10, 6, 4, 0)
	assert.Len(t, f.movements(t), 1)
}

func TestAtualizarStatus_StatusInvalido(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 1, "A", 1)
	o := f.create(t, line("X", 1))
	_, err := f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, "enviada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAtualizarStatus_NaoEncontrada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AtualizarStatus(context.Background(), expedicao, "nope", entity.OrdemCancelada)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Linha k sem saldo: nenhuma linha anterior fica reservada.
func TestCriarOrdem_ReservaAtomica(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "P", 5, "A", 1)
	f.putItem(t, "Q", 5, "A", 2)
	f.putItem(t, "R", 2, "A", 3)

	_, err := f.uc.CriarOrdem(context.Background(), expedicao, dto.CreateOrdemRequest{
		Itens: []dto.CreateOrdemLine{line("P", 3), line("Q", 5), line("R", 3)},
	})

	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, "COD-R", ins.Codigo)
	assert.Equal(t, 1, ins.Shortfall())

	assertBuckets(t, f.item(t, "P"), 5, 5, 0, 0)
	assertBuckets(t, f.item(t, "Q"), 5, 5, 0, 0)
	assertBuckets(t, f.item(t, "R"), 2, 2, 0, 0)
	assert.Empty(t, f.movements(t))

	ordens, total, err := f.uc.List(context.Background(), repository.OrdemFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, ordens)
}

// Duas linhas do mesmo item somam contra o mesmo saldo.
// lockRecorder registra a ordem dos bloqueios de item.
type lockRecorder struct {
	repository.InventoryItemRepository
	got []string
}

func (r *lockRecorder) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	r.got = append(r.got, id)
	return r.InventoryItemRepository.GetForUpdate(ctx, id)
}

type recordingTx struct {
	*memory.Store
	items *lockRecorder
}

func (tx recordingTx) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	return tx.Store.Run(ctx, func(r ports.Repos) error {
		tx.items.InventoryItemRepository = r.Items
		r.Items = tx.items
		return fn(r)
	})
}

func TestCriarOrdem_TravaItensEmOrdemDeID(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "B", 5, "A", 1)
	f.putItem(t, "A", 5, "A", 2)
	f.putItem(t, "C", 5, "A", 3)

	rec := &lockRecorder{}
	uc := ordem.NewUseCase(recordingTx{Store: f.store, items: rec}, memory.NewSequence("OS", nil), nil, logger.Nop())
	o, err := uc.CriarOrdem(context.Background(), expedicao, dto.CreateOrdemRequest{
		Itens: []dto.CreateOrdemLine{line("C", 1), line("A", 1), line("B", 2), line("C", 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, rec.got)

	// linhas mantêm a ordem do pedido
	require.Len(t, o.Itens, 4)
	assert.Equal(t, "C", o.Itens[0].ItemID)
	assert.Equal(t, "A", o.Itens[1].ItemID)
	assertBuckets(t, f.item(t, "C"), 5, 3, 2, 0)

	rec.got = nil
	_, err = uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemCancelada)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, rec.got)
}

func TestCriarOrdem_LinhasRepetidasDoMesmoItem(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 5, "A", 1)

	_, err := f.uc.CriarOrdem(context.Background(), expedicao, dto.CreateOrdemRequest{
		Itens: []dto.CreateOrdemLine{line("X", 3), line("X", 3)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	o := f.create(t, line("X", 3), line("X", 2))
	assert.Len(t, o.Itens, 2)
	assertBuckets(t, f.item(t, "X"), 5, 0, 5, 0)

	_, err = f.uc.AtualizarStatus(context.Background(), expedicao, o.ID, entity.OrdemConcluida)
	require.NoError(t, err)
	assert.Nil(t, f.item(t, "X"))
}

func TestCriarOrdem_Validacoes(t *testing.T) {
	f := newFixture(t)
	f.putItem(t, "X", 5, "A", 1)
	ctx := context.Background()

	_, err := f.uc.CriarOrdem(ctx, expedicao, dto.CreateOrdemRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CriarOrdem(ctx, expedicao, dto.CreateOrdemRequest{Itens: []dto.CreateOrdemLine{line("X", 0)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CriarOrdem(ctx, expedicao, dto.CreateOrdemRequest{Itens: []dto.CreateOrdemLine{line("nope", 1)}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAtualizarOrdem_AjustaReservaPelaDiferenca(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))
	lineID := o.Itens[0].ID

	qty := 7
	obs := "entregar pela manhã"
	got, err := f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{
		Observacoes: &obs,
		Itens:       []dto.UpdateOrdemLine{{ID: lineID, Quantidade: &qty}},
	})
	require.NoError(t, err)
	assert.Equal(t, obs, got.Observacoes)
	assert.Equal(t, 7, got.Itens[0].Quantidade)
	assertBuckets(t, f.item(t, "X"), 10, 3, 7, 0)

	qty = 2
	_, err = f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{
		Itens: []dto.UpdateOrdemLine{{ID: lineID, Quantidade: &qty}},
	})
	require.NoError(t, err)
	assertBuckets(t, f.item(t, "X"), 10, 8, 2, 0)

	ms := f.movements(t)
	require.Len(t, ms, 3)
	assert.Equal(t, entity.MovementEntrada, ms[0].Tipo)
	assert.Equal(t, 5, ms[0].Quantidade)
	assert.Equal(t, entity.MovementSaida, ms[1].Tipo)
	assert.Equal(t, 3, ms[1].Quantidade)

	qty = 20
	_, err = f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{
		Itens: []dto.UpdateOrdemLine{{ID: lineID, Quantidade: &qty}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertBuckets(t, f.item(t, "X"), 10, 8, 2, 0)

	stored, err := f.uc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Itens[0].Quantidade)
	assert.Equal(t, obs, stored.Observacoes)

	// cancelar devolve exatamente o que está reservado agora
	_, err = f.uc.AtualizarStatus(ctx, expedicao, o.ID, entity.OrdemCancelada)
	require.NoError(t, err)
	assertBuckets(t, f.item(t, "X"), 10, 10, 0, 0)
}

func TestAtualizarOrdem_CamposDaLinhaELimparObservacoes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putItem(t, "X", 10, "A", 1)
	o, err := f.uc.CriarOrdem(ctx, expedicao, dto.CreateOrdemRequest{Observacoes: "urgente", Itens: []dto.CreateOrdemLine{line("X", 1)}})
	require.NoError(t, err)

	empty := ""
	empresa := "Alumínio Norte"
	got, err := f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{
		Observacoes: &empty,
		Itens:       []dto.UpdateOrdemLine{{ID: o.Itens[0].ID, Empresa: &empresa}},
	})
	require.NoError(t, err)
	assert.Empty(t, got.Observacoes)
	assert.Equal(t, empresa, got.Itens[0].Empresa)
	assert.Len(t, f.movements(t), 1, "sem mudança de quantidade não há movimentação")

	_, err = f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{
		Itens: []dto.UpdateOrdemLine{{ID: "linha-inexistente", Empresa: &empresa}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAtualizarOrdem_EncerradaRejeitada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putItem(t, "X", 10, "A", 1)
	o := f.create(t, line("X", 4))
	_, err := f.uc.AtualizarStatus(ctx, expedicao, o.ID, entity.OrdemCancelada)
	require.NoError(t, err)

	obs := "tarde demais"
	_, err = f.uc.AtualizarOrdem(ctx, expedicao, o.ID, dto.UpdateOrdemRequest{Observacoes: &obs})
	require.ErrorIs(t, err, domain.ErrTerminalOrder)
}

func TestList_FiltroEBusca(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.putItem(t, "X", 10, "A", 1)
	first := f.create(t, line("X", 1))
	f.create(t, line("X", 1))
	_, err := f.uc.AtualizarStatus(ctx, expedicao, first.ID, entity.OrdemCancelada)
	require.NoError(t, err)

	all, total, err := f.uc.List(ctx, repository.OrdemFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "OS-2026-00002", all[0].NumeroOrdem, "mais recente primeiro")

	canceladas, total, err := f.uc.List(ctx, repository.OrdemFilter{Status: entity.OrdemCancelada})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first.ID, canceladas[0].ID)

	_, total, err = f.uc.List(ctx, repository.OrdemFilter{Search: "00002"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, _, err = f.uc.List(ctx, repository.OrdemFilter{Status: "perdida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCriarOrdem_PublicaEventosAposCommit(t *testing.T) {
	s := memory.NewStore()
	broker := events.NewBroker(16)
	defer broker.Close()
	ch, cancel := broker.Subscribe()
	defer cancel()
	uc := ordem.NewUseCase(s, memory.NewSequence("OS", nil), broker, logger.Nop())

	it := &entity.InventoryItem{ID: "X", Codigo: "X", Tipo: entity.ItemTypeLingote, Quantidade: 2, QuantidadeDisponivel: 2,
		Position: entity.NewStoragePosition("C", 1)}
	require.NoError(t, s.Repos().Items.Create(context.Background(), it))

	o, err := uc.CriarOrdem(context.Background(), expedicao, dto.CreateOrdemRequest{Itens: []dto.CreateOrdemLine{{ItemID: "X", Quantidade: 1}}})
	require.NoError(t, err)

	var got []entity.ChangeEvent
	for range 3 {
		select {
		case ev := <-ch:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatal("evento não recebido")
		}
	}
	assert.Equal(t, entity.EventEntityOrdem, got[0].Entity)
	assert.Equal(t, o.ID, got[0].ID)
	assert.Equal(t, entity.EventEntityItem, got[1].Entity)
	assert.Equal(t, entity.EventEntityMovimento, got[2].Entity)
}
