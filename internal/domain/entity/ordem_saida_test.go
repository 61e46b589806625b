package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

var allStatuses = []entity.OrdemStatus{
	entity.OrdemEmSeparacao,
	entity.OrdemAguardandoEnvio,
	entity.OrdemConcluida,
	entity.OrdemCancelada,
}

// Todos os 16 pares (origem, destino): somente os quatro previstos são aceitos.
func TestCanTransitionTo_Exaustivo(t *testing.T) {
	allowed := map[[2]entity.OrdemStatus]bool{
		{entity.OrdemEmSeparacao, entity.OrdemAguardandoEnvio}: true,
		{entity.OrdemEmSeparacao, entity.OrdemConcluida}:       true,
		{entity.OrdemEmSeparacao, entity.OrdemCancelada}:       true,
		{entity.OrdemAguardandoEnvio, entity.OrdemConcluida}:   true,
		{entity.OrdemAguardandoEnvio, entity.OrdemCancelada}:   true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]entity.OrdemStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)

			o := &entity.OrdemSaida{NumeroOrdem: "OS-2026-00001", Status: from}
			err := o.CheckTransition(to)
			if want {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrTerminalOrder, "%s -> %s", from, to)
			}
		}
	}
}

func TestCheckTransition_StatusInvalido(t *testing.T) {
	o := &entity.OrdemSaida{Status: entity.OrdemEmSeparacao}
	assert.ErrorIs(t, o.CheckTransition("enviada"), domain.ErrInvalidInput)
}

func TestCanModify(t *testing.T) {
	for _, s := range allStatuses {
		o := &entity.OrdemSaida{Status: s}
		if s.IsTerminal() {
			assert.ErrorIs(t, o.CanModify(), domain.ErrTerminalOrder)
		} else {
			assert.NoError(t, o.CanModify())
		}
	}
}

func TestOrdemClone_Independente(t *testing.T) {
	o := &entity.OrdemSaida{Itens: []entity.OrdemSaidaItem{{ID: "l1", Quantidade: 2}}}
	c := o.Clone()
	c.Itens[0].Quantidade = 9

	assert.Equal(t, 2, o.Itens[0].Quantidade)
	line, ok := o.Line("l1")
	assert.True(t, ok)
	assert.Equal(t, 2, line.Quantidade)
}
