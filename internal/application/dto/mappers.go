package dto

import "github.com/jhoicas/estoque-tarugos/internal/domain/entity"

func FromPosition(p entity.StoragePosition) PositionDTO {
	return PositionDTO{Coluna: p.Column, Andar: p.Floor}
}

func (p PositionDTO) ToEntity() entity.StoragePosition {
	return entity.NewStoragePosition(p.Coluna, p.Andar)
}

func FromItem(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:                   it.ID,
		Codigo:               it.Codigo,
		Nome:                 it.Nome,
		Tipo:                 string(it.Tipo),
		Largura:              it.Attributes.Largura,
		Altura:               it.Attributes.Altura,
		Espessura:            it.Attributes.Espessura,
		Polegada:             it.Attributes.Polegada,
		Tempera:              string(it.Attributes.Tempera),
		Acabamento:           it.Acabamento,
		PesoBruto:            it.PesoBruto,
		PesoLiquido:          it.PesoLiquido,
		Quantidade:           it.Quantidade,
		QuantidadeDisponivel: it.QuantidadeDisponivel,
		QuantidadeReservada:  it.QuantidadeReservada,
		QuantidadeAvaria:     it.QuantidadeAvaria,
		Posicao:              FromPosition(it.Position),
		Status:               string(it.Status),
		Observacoes:          it.Observacoes,
		ObservacaoDisponivel: it.ObservacaoDisponivel,
		ObservacaoReservado:  it.ObservacaoReservado,
		ObservacaoAvaria:     it.ObservacaoAvaria,
		LoteID:               it.LoteID,
		Usina:                it.Usina,
		Version:              it.Version,
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}
}

func FromItems(items []*entity.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}

func FromOrdem(o *entity.OrdemSaida) OrdemResponse {
	lines := make([]OrdemLineResponse, 0, len(o.Itens))
	for _, l := range o.Itens {
		lines = append(lines, OrdemLineResponse{
			ID:          l.ID,
			ItemID:      l.ItemID,
			Codigo:      l.Codigo,
			Tipo:        l.Tipo,
			Quantidade:  l.Quantidade,
			Posicao:     FromPosition(l.Position),
			Empresa:     l.Empresa,
			Observacoes: l.Observacoes,
		})
	}
	return OrdemResponse{
		ID:           o.ID,
		NumeroOrdem:  o.NumeroOrdem,
		DataEmissao:  o.DataEmissao,
		UsuarioID:    o.UsuarioID,
		UsuarioNome:  o.UsuarioNome,
		UsuarioEmail: o.UsuarioEmail,
		Status:       string(o.Status),
		StatusLabel:  o.Status.Label(),
		Observacoes:  o.Observacoes,
		Itens:        lines,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		Codigo:      m.Codigo,
		Tipo:        string(m.Tipo),
		Quantidade:  m.Quantidade,
		Posicao:     FromPosition(m.Position),
		Observacoes: m.Observacoes,
		Timestamp:   m.Timestamp,
		UserID:      m.UserID,
		UserName:    m.UserName,
		UserEmail:   m.UserEmail,
	}
}

func FromProfile(p *entity.Profile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromTowerConfig(cfg entity.TowerConfig) TowerConfigResponse {
	positions := cfg.PositionList()
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.String())
	}
	return TowerConfigResponse{Colunas: cfg.Clone(), Posicoes: names, Total: len(names)}
}
