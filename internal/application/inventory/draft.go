package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-tarugos/internal/application/dto"
	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// newItemFromDraft monta o item e valida quantidades. A posição é validada depois, contra a torre.
func newItemFromDraft(in dto.CreateItemRequest, now time.Time) (*entity.InventoryItem, error) {
	codigo := strings.TrimSpace(in.Codigo)
	if codigo == "" {
		return nil, domain.NewValidation("codigo", "obrigatório")
	}
	tipo := entity.ItemType(strings.ToLower(strings.TrimSpace(in.Tipo)))
	if !tipo.Valid() {
		return nil, domain.NewValidation("tipo", "deve ser tarugo ou lingote")
	}
	if in.Quantidade < 1 {
		return nil, domain.NewValidation("quantidade", "deve ser ao menos 1")
	}
	tempera := entity.Tempera(strings.TrimSpace(in.Tempera))
	if tempera != "" && !tempera.Valid() {
		return nil, domain.NewValidation("tempera", "têmpera inválida: "+string(tempera))
	}

	reservada := deref(in.QuantidadeReservada)
	avaria := deref(in.QuantidadeAvaria)
	disponivel := in.Quantidade - reservada - avaria
	if in.QuantidadeDisponivel != nil {
		disponivel = *in.QuantidadeDisponivel
	}

	item := &entity.InventoryItem{
		ID:     uuid.New().String(),
		Codigo: codigo,
		Nome:   strings.TrimSpace(in.Nome),
		Tipo:   tipo,
		Attributes: entity.ItemAttributes{
			Largura:   in.Largura,
			Altura:    in.Altura,
			Espessura: in.Espessura,
			Polegada:  in.Polegada,
			Tempera:   tempera,
		},
		Acabamento:           strings.TrimSpace(in.Acabamento),
		PesoBruto:            in.PesoBruto,
		PesoLiquido:          in.PesoLiquido,
		Quantidade:           in.Quantidade,
		QuantidadeDisponivel: disponivel,
		QuantidadeReservada:  reservada,
		QuantidadeAvaria:     avaria,
		Position:             in.Posicao.ToEntity(),
		Observacoes:          in.Observacoes,
		ObservacaoDisponivel: in.ObservacaoDisponivel,
		ObservacaoReservado:  in.ObservacaoReservado,
		ObservacaoAvaria:     in.ObservacaoAvaria,
		LoteID:               strings.TrimSpace(in.LoteID),
		Usina:                strings.TrimSpace(in.Usina),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := item.CheckBuckets(); err != nil {
		return nil, err
	}
	item.RefreshStatus()
	return item, nil
}

// applyPatch aplica os campos presentes. Devolve true se alguma quantidade foi tocada.
func applyPatch(it *entity.InventoryItem, in dto.UpdateItemRequest) (quantitiesTouched bool, err error) {
	if in.Codigo != nil {
		c := strings.TrimSpace(*in.Codigo)
		if c == "" {
			return false, domain.NewValidation("codigo", "não pode ficar vazio")
		}
		it.Codigo = c
	}
	if in.Nome != nil {
		it.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Tipo != nil {
		t := entity.ItemType(strings.ToLower(strings.TrimSpace(*in.Tipo)))
		if !t.Valid() {
			return false, domain.NewValidation("tipo", "deve ser tarugo ou lingote")
		}
		it.Tipo = t
	}
	if in.Tempera != nil {
		t := entity.Tempera(strings.TrimSpace(*in.Tempera))
		if t != "" && !t.Valid() {
			return false, domain.NewValidation("tempera", "têmpera inválida: "+string(t))
		}
		it.Attributes.Tempera = t
	}
	if in.Largura != nil {
		it.Attributes.Largura = in.Largura
	}
	if in.Altura != nil {
		it.Attributes.Altura = in.Altura
	}
	if in.Espessura != nil {
		it.Attributes.Espessura = in.Espessura
	}
	if in.Polegada != nil {
		it.Attributes.Polegada = in.Polegada
	}
	if in.Acabamento != nil {
		it.Acabamento = strings.TrimSpace(*in.Acabamento)
	}
	if in.PesoBruto != nil {
		it.PesoBruto = in.PesoBruto
	}
	if in.PesoLiquido != nil {
		it.PesoLiquido = in.PesoLiquido
	}
	setStr(&it.Observacoes, in.Observacoes)
	setStr(&it.ObservacaoDisponivel, in.ObservacaoDisponivel)
	setStr(&it.ObservacaoReservado, in.ObservacaoReservado)
	setStr(&it.ObservacaoAvaria, in.ObservacaoAvaria)
	setStr(&it.LoteID, in.LoteID)
	setStr(&it.Usina, in.Usina)

	quantitiesTouched = setInt(&it.Quantidade, in.Quantidade)
	quantitiesTouched = setInt(&it.QuantidadeDisponivel, in.QuantidadeDisponivel) || quantitiesTouched
	quantitiesTouched = setInt(&it.QuantidadeReservada, in.QuantidadeReservada) || quantitiesTouched
	quantitiesTouched = setInt(&it.QuantidadeAvaria, in.QuantidadeAvaria) || quantitiesTouched
	return quantitiesTouched, nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}
