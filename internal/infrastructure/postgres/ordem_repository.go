package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
	"github.com/jhoicas/estoque-tarugos/internal/domain/repository"
)

var _ repository.OrdemSaidaRepository = (*OrdemRepo)(nil)

var ordemColumns = []string{
	"id", "numero_ordem", "data_emissao", "usuario_id", "usuario_nome", "usuario_email",
	"status", "observacoes", "created_at", "updated_at",
}

var ordemLineColumns = []string{
	"id", "ordem_id", "item_id", "codigo", "tipo", "quantidade", "position_column",
	"position_floor", "empresa", "observacoes", "created_at",
}

type ordemRow struct {
	ID           string    `db:"id"`
	NumeroOrdem  string    `db:"numero_ordem"`
	DataEmissao  time.Time `db:"data_emissao"`
	UsuarioID    string    `db:"usuario_id"`
	UsuarioNome  string    `db:"usuario_nome"`
	UsuarioEmail string    `db:"usuario_email"`
	Status       string    `db:"status"`
	Observacoes  string    `db:"observacoes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r ordemRow) toEntity() *entity.OrdemSaida {
	return &entity.OrdemSaida{
		ID:           r.ID,
		NumeroOrdem:  r.NumeroOrdem,
		DataEmissao:  r.DataEmissao,
		UsuarioID:    r.UsuarioID,
		UsuarioNome:  r.UsuarioNome,
		UsuarioEmail: r.UsuarioEmail,
		Status:       entity.OrdemStatus(r.Status),
		Observacoes:  r.Observacoes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ordemLineRow struct {
	ID             string    `db:"id"`
	OrdemID        string    `db:"ordem_id"`
	ItemID         string    `db:"item_id"`
	Codigo         string    `db:"codigo"`
	Tipo           string    `db:"tipo"`
	Quantidade     int       `db:"quantidade"`
	PositionColumn string    `db:"position_column"`
	PositionFloor  int       `db:"position_floor"`
	Empresa        string    `db:"empresa"`
	Observacoes    string    `db:"observacoes"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r ordemLineRow) toEntity() entity.OrdemSaidaItem {
	return entity.OrdemSaidaItem{
		ID:          r.ID,
		OrdemID:     r.OrdemID,
		ItemID:      r.ItemID,
		Codigo:      r.Codigo,
		Tipo:        r.Tipo,
		Quantidade:  r.Quantidade,
		Position:    entity.NewStoragePosition(r.PositionColumn, r.PositionFloor),
		Empresa:     r.Empresa,
		Observacoes: r.Observacoes,
		CreatedAt:   r.CreatedAt,
	}
}

// OrdemRepo cabeçalho em ordens_saida, linhas em ordem_saida_itens (line_no preserva a ordem).
type OrdemRepo struct {
	q Querier
}

func NewOrdemRepository(q Querier) *OrdemRepo {
	return &OrdemRepo{q: q}
}

func (r *OrdemRepo) Create(ctx context.Context, o *entity.OrdemSaida) error {
	sql, args, err := builder().Insert("ordens_saida").Columns(ordemColumns...).
		Values(o.ID, o.NumeroOrdem, o.DataEmissao, o.UsuarioID, o.UsuarioNome, o.UsuarioEmail,
			string(o.Status), o.Observacoes, o.CreatedAt, o.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert ordem: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return translate(err, "insert ordem")
	}
	if len(o.Itens) == 0 {
		return nil
	}

	ins := builder().Insert("ordem_saida_itens").Columns(append(ordemLineColumns, "line_no")...)
	for i, l := range o.Itens {
		ins = ins.Values(l.ID, o.ID, l.ItemID, l.Codigo, l.Tipo, l.Quantidade, l.Position.Column,
			l.Position.Floor, l.Empresa, l.Observacoes, l.CreatedAt, i+1)
	}
	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert linhas: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return translate(err, "insert linhas")
	}
	return nil
}

func (r *OrdemRepo) GetByID(ctx context.Context, id string) (*entity.OrdemSaida, error) {
	return r.getOne(ctx, id, "")
}

// GetForUpdate trava o cabeçalho; as linhas só mudam com o cabeçalho travado.
func (r *OrdemRepo) GetForUpdate(ctx context.Context, id string) (*entity.OrdemSaida, error) {
	return r.getOne(ctx, id, "FOR UPDATE")
}

func (r *OrdemRepo) getOne(ctx context.Context, id, suffix string) (*entity.OrdemSaida, error) {
	q := builder().Select(ordemColumns...).From("ordens_saida").Where(squirrel.Eq{"id": id})
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select ordem: %w", err)
	}
	var row ordemRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ordem: %w", err)
	}
	o := row.toEntity()
	lines, err := r.lines(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Itens = lines[o.ID]
	return o, nil
}

func (r *OrdemRepo) lines(ctx context.Context, ordemIDs []string) (map[string][]entity.OrdemSaidaItem, error) {
	sql, args, err := builder().Select(ordemLineColumns...).From("ordem_saida_itens").
		Where("ordem_id = ANY(?)", ordemIDs).
		OrderBy("ordem_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select linhas: %w", err)
	}
	var rows []ordemLineRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select linhas: %w", err)
	}
	out := make(map[string][]entity.OrdemSaidaItem, len(ordemIDs))
	for _, row := range rows {
		out[row.OrdemID] = append(out[row.OrdemID], row.toEntity())
	}
	return out, nil
}

func (r *OrdemRepo) UpdateHeader(ctx context.Context, o *entity.OrdemSaida) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE ordens_saida SET status = $2, observacoes = $3, updated_at = $4 WHERE id = $1`,
		o.ID, string(o.Status), o.Observacoes, o.UpdatedAt)
	if err != nil {
		return translate(err, "update ordem")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ordem_saida", o.ID)
	}
	return nil
}

func (r *OrdemRepo) UpdateLine(ctx context.Context, l *entity.OrdemSaidaItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ordem_saida_itens
		SET codigo = $3, tipo = $4, quantidade = $5, empresa = $6, observacoes = $7
		WHERE id = $1 AND ordem_id = $2`,
		l.ID, l.OrdemID, l.Codigo, l.Tipo, l.Quantidade, l.Empresa, l.Observacoes)
	if err != nil {
		return translate(err, "update linha")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ordem_saida_item", l.ID)
	}
	return nil
}

// List mais recentes primeiro; linhas carregadas numa segunda consulta.
func (r *OrdemRepo) List(ctx context.Context, f repository.OrdemFilter) ([]*entity.OrdemSaida, int, error) {
	q := builder().Select(ordemColumns...).From("ordens_saida")
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(f.Status)})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where(squirrel.ILike{"numero_ordem": "%" + escapeLike(s) + "%"})
	}

	countSQL, countArgs, err := builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count ordens: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ordens: %w", err)
	}

	q = q.OrderBy("data_emissao DESC", "numero_ordem DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list ordens: %w", err)
	}
	var rows []ordemRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list ordens: %w", err)
	}
	if len(rows) == 0 {
		return []*entity.OrdemSaida{}, total, nil
	}

	out := make([]*entity.OrdemSaida, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
		ids = append(ids, row.ID)
	}
	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range out {
		o.Itens = lines[o.ID]
	}
	return out, total, nil
}

func (r *OrdemRepo) ReservedByItem(ctx context.Context, itemID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.quantidade), 0)
		FROM ordem_saida_itens l
		JOIN ordens_saida o ON o.id = l.ordem_id
		WHERE l.item_id = $1 AND o.status IN ('em_separacao', 'aguardando_envio')`, itemID).Scan(&sum)
	if err != nil {
		if isNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reserved by item: %w", err)
	}
	return sum, nil
}
