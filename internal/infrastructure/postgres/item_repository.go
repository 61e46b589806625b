package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
	"github.com/jhoicas/estoque-tarugos/pkg/textnorm"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

var itemColumns = []string{
	"id", "codigo", "nome", "tipo", "largura", "altura", "espessura", "polegada", "tempera",
	"acabamento", "peso_bruto", "peso_liquido", "quantidade", "quantidade_disponivel",
	"quantidade_reservada", "quantidade_avaria", "position_column", "position_floor", "status",
	"observacoes", "observacao_disponivel", "observacao_reservado", "observacao_avaria",
	"lote_id", "usina", "version", "created_at", "updated_at",
}

type itemRow struct {
	ID                   string           `db:"id"`
	Codigo               string           `db:"codigo"`
	Nome                 string           `db:"nome"`
	Tipo                 string           `db:"tipo"`
	Largura              *decimal.Decimal `db:"largura"`
	Altura               *decimal.Decimal `db:"altura"`
	Espessura            *decimal.Decimal `db:"espessura"`
	Polegada             *decimal.Decimal `db:"polegada"`
	Tempera              string           `db:"tempera"`
	Acabamento           string           `db:"acabamento"`
	PesoBruto            *decimal.Decimal `db:"peso_bruto"`
	PesoLiquido          *decimal.Decimal `db:"peso_liquido"`
	Quantidade           int              `db:"quantidade"`
	QuantidadeDisponivel int              `db:"quantidade_disponivel"`
	QuantidadeReservada  int              `db:"quantidade_reservada"`
	QuantidadeAvaria     int              `db:"quantidade_avaria"`
	PositionColumn       string           `db:"position_column"`
	PositionFloor        int              `db:"position_floor"`
	Status               string           `db:"status"`
	Observacoes          string           `db:"observacoes"`
	ObservacaoDisponivel string           `db:"observacao_disponivel"`
	ObservacaoReservado  string           `db:"observacao_reservado"`
	ObservacaoAvaria     string           `db:"observacao_avaria"`
	LoteID               string           `db:"lote_id"`
	Usina                string           `db:"usina"`
	Version              int64            `db:"version"`
	CreatedAt            time.Time        `db:"created_at"`
	UpdatedAt            time.Time        `db:"updated_at"`
}

func (r itemRow) toEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:     r.ID,
		Codigo: r.Codigo,
		Nome:   r.Nome,
		Tipo:   entity.ItemType(r.Tipo),
		Attributes: entity.ItemAttributes{
			Largura:   r.Largura,
			Altura:    r.Altura,
			Espessura: r.Espessura,
			Polegada:  r.Polegada,
			Tempera:   entity.Tempera(r.Tempera),
		},
		Acabamento:           r.Acabamento,
		PesoBruto:            r.PesoBruto,
		PesoLiquido:          r.PesoLiquido,
		Quantidade:           r.Quantidade,
		QuantidadeDisponivel: r.QuantidadeDisponivel,
		QuantidadeReservada:  r.QuantidadeReservada,
		QuantidadeAvaria:     r.QuantidadeAvaria,
		Position:             entity.NewStoragePosition(strings.TrimSpace(r.PositionColumn), r.PositionFloor),
		Status:               entity.ItemStatus(r.Status),
		Observacoes:          r.Observacoes,
		ObservacaoDisponivel: r.ObservacaoDisponivel,
		ObservacaoReservado:  r.ObservacaoReservado,
		ObservacaoAvaria:     r.ObservacaoAvaria,
		LoteID:               r.LoteID,
		Usina:                r.Usina,
		Version:              r.Version,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// ItemRepo implementação de InventoryItemRepository sobre PostgreSQL (pool ou tx).
type ItemRepo struct {
	q Querier
}

func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func searchKey(it *entity.InventoryItem) string {
	return textnorm.Key(it.Codigo, it.Nome, it.Acabamento, it.LoteID, it.Usina)
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	it.Version = 1
	sql, args, err := builder().Insert("inventory_items").
		Columns(append(itemColumns, "search_key")...).
		Values(
			it.ID, it.Codigo, it.Nome, string(it.Tipo), it.Attributes.Largura, it.Attributes.Altura,
			it.Attributes.Espessura, it.Attributes.Polegada, string(it.Attributes.Tempera),
			it.Acabamento, it.PesoBruto, it.PesoLiquido, it.Quantidade, it.QuantidadeDisponivel,
			it.QuantidadeReservada, it.QuantidadeAvaria, it.Position.Column, it.Position.Floor, string(it.Status),
			it.Observacoes, it.ObservacaoDisponivel, it.ObservacaoReservado, it.ObservacaoAvaria,
			it.LoteID, it.Usina, it.Version, it.CreatedAt, it.UpdatedAt, searchKey(it),
		).ToSql()
	if err != nil {
		return fmt.Errorf("build insert item: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return translate(err, "insert item")
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, id, "")
}

// GetForUpdate SELECT ... FOR UPDATE: bloqueia a linha até o fim da transação.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, id, "FOR UPDATE")
}

func (r *ItemRepo) getOne(ctx context.Context, id, suffix string) (*entity.InventoryItem, error) {
	q := builder().Select(itemColumns...).From("inventory_items").Where(squirrel.Eq{"id": id})
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select item: %w", err)
	}
	var row itemRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return row.toEntity(), nil
}

// Update grava todos os campos se a versão for a lida; caso contrário ConcurrencyError.
func (r *ItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	sql, args, err := builder().Update("inventory_items").
		SetMap(map[string]any{
			"codigo":                it.Codigo,
			"nome":                  it.Nome,
			"tipo":                  string(it.Tipo),
			"largura":               it.Attributes.Largura,
			"altura":                it.Attributes.Altura,
			"espessura":             it.Attributes.Espessura,
			"polegada":              it.Attributes.Polegada,
			"tempera":               string(it.Attributes.Tempera),
			"acabamento":            it.Acabamento,
			"peso_bruto":            it.PesoBruto,
			"peso_liquido":          it.PesoLiquido,
			"quantidade":            it.Quantidade,
			"quantidade_disponivel": it.QuantidadeDisponivel,
			"quantidade_reservada":  it.QuantidadeReservada,
			"quantidade_avaria":     it.QuantidadeAvaria,
			"position_column":       it.Position.Column,
			"position_floor":        it.Position.Floor,
			"status":                string(it.Status),
			"observacoes":           it.Observacoes,
			"observacao_disponivel": it.ObservacaoDisponivel,
			"observacao_reservado":  it.ObservacaoReservado,
			"observacao_avaria":     it.ObservacaoAvaria,
			"lote_id":               it.LoteID,
			"usina":                 it.Usina,
			"search_key":            searchKey(it),
			"updated_at":            it.UpdatedAt,
		}).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": it.ID}).
		Where(squirrel.Eq{"version": it.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err, "update item")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewConcurrency("item", it.ID)
	}
	it.Version++
	return nil
}

// Delete movimentações ficam com item_id NULL (ON DELETE SET NULL).
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete item")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("item", id)
	}
	return nil
}

func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	q := builder().Select(itemColumns...).From("inventory_items")

	if f.Tipo != "" {
		q = q.Where(squirrel.Eq{"tipo": string(f.Tipo)})
	}
	if f.Acabamento != "" {
		q = q.Where(squirrel.ILike{"acabamento": f.Acabamento})
	}
	if f.Tempera != "" {
		q = q.Where(squirrel.Eq{"tempera": string(f.Tempera)})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(f.Status)})
	}
	if f.Column != "" {
		q = q.Where(squirrel.Eq{"position_column": strings.ToUpper(f.Column)})
	}
	if term := textnorm.Fold(f.Search); term != "" {
		q = q.Where(squirrel.Like{"search_key": "%" + escapeLike(term) + "%"})
	}

	countSQL, countArgs, err := builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count items: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	q = q.OrderBy("created_at DESC", "id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items: %w", err)
	}
	var rows []itemRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	out := make([]*entity.InventoryItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, total, nil
}

func (r *ItemRepo) CountByPosition(ctx context.Context) (map[entity.StoragePosition]int, error) {
	var rows []struct {
		Column string `db:"position_column"`
		Floor  int    `db:"position_floor"`
		Count  int    `db:"n"`
	}
	err := pgxscan.Select(ctx, r.q, &rows, `
		SELECT position_column, position_floor, COUNT(*) AS n
		FROM inventory_items
		GROUP BY position_column, position_floor`)
	if err != nil {
		return nil, fmt.Errorf("count by position: %w", err)
	}
	out := make(map[entity.StoragePosition]int, len(rows))
	for _, row := range rows {
		out[entity.NewStoragePosition(strings.TrimSpace(row.Column), row.Floor)] = row.Count
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

