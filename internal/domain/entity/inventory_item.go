package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-tarugos/internal/domain"
)

// ItemType tarugo ou lingote.
type ItemType string

const (
	ItemTypeTarugo  ItemType = "tarugo"
	ItemTypeLingote ItemType = "lingote"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeTarugo || t == ItemTypeLingote
}

// Tempera têmpera da liga.
type Tempera string

const (
	TemperaH14 Tempera = "H14"
	TemperaH16 Tempera = "H16"
	TemperaH18 Tempera = "H18"
	TemperaH24 Tempera = "H24"
	TemperaH26 Tempera = "H26"
	TemperaO   Tempera = "O"
	TemperaT6  Tempera = "T6"
)

func (t Tempera) Valid() bool {
	switch t {
	case TemperaH14, TemperaH16, TemperaH18, TemperaH24, TemperaH26, TemperaO, TemperaT6:
		return true
	}
	return false
}

// ItemStatus derivado dos baldes de quantidade, nunca informado pelo usuário.
type ItemStatus string

const (
	ItemStatusDisponivel   ItemStatus = "disponivel"
	ItemStatusIndisponivel ItemStatus = "indisponivel"
	ItemStatusReservado    ItemStatus = "reservado"
	ItemStatusAvaria       ItemStatus = "avaria"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusDisponivel, ItemStatusIndisponivel, ItemStatusReservado, ItemStatusAvaria:
		return true
	}
	return false
}

// Bucket balde de onde uma retirada é debitada.
type Bucket string

const (
	BucketDisponivel Bucket = "disponivel"
	BucketAvaria     Bucket = "avaria"
)

// ItemAttributes medidas físicas opcionais.
type ItemAttributes struct {
	Largura   *decimal.Decimal
	Altura    *decimal.Decimal
	Espessura *decimal.Decimal
	Polegada  *decimal.Decimal
	Tempera   Tempera
}

// InventoryItem lote de tarugos/lingotes guardado em uma posição da torre.
// Invariante: Disponivel + Reservada + Avaria == Quantidade, todos >= 0.
type InventoryItem struct {
	ID          string
	Codigo      string
	Nome        string
	Tipo        ItemType
	Attributes  ItemAttributes
	Acabamento  string
	PesoBruto   *decimal.Decimal
	PesoLiquido *decimal.Decimal

	Quantidade           int
	QuantidadeDisponivel int
	QuantidadeReservada  int
	QuantidadeAvaria     int

	Position StoragePosition
	Status   ItemStatus

	Observacoes          string
	ObservacaoDisponivel string
	ObservacaoReservado  string
	ObservacaoAvaria     string
	LoteID               string
	Usina                string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveStatus regra única de status a partir dos baldes.
func DeriveStatus(quantidade, disponivel, reservada, avaria int) ItemStatus {
	switch {
	case quantidade > 0 && avaria == quantidade:
		return ItemStatusAvaria
	case quantidade > 0 && reservada == quantidade:
		return ItemStatusReservado
	case disponivel > 0:
		return ItemStatusDisponivel
	default:
		return ItemStatusIndisponivel
	}
}

// RefreshStatus recalcula Status após qualquer alteração de quantidades.
func (i *InventoryItem) RefreshStatus() {
	i.Status = DeriveStatus(i.Quantidade, i.QuantidadeDisponivel, i.QuantidadeReservada, i.QuantidadeAvaria)
}

// CheckBuckets valida a invariante de quantidades.
func (i *InventoryItem) CheckBuckets() error {
	if i.Quantidade < 0 {
		return domain.NewValidation("quantidade", "não pode ser negativa")
	}
	if i.QuantidadeDisponivel < 0 {
		return domain.NewValidation("quantidade_disponivel", "não pode ser negativa")
	}
	if i.QuantidadeReservada < 0 {
		return domain.NewValidation("quantidade_reservada", "não pode ser negativa")
	}
	if i.QuantidadeAvaria < 0 {
		return domain.NewValidation("quantidade_avaria", "não pode ser negativa")
	}
	if sum := i.QuantidadeDisponivel + i.QuantidadeReservada + i.QuantidadeAvaria; sum != i.Quantidade {
		return &domain.QuantityMismatchError{Sum: sum, Total: i.Quantidade}
	}
	return nil
}

// Reserve move qty de disponível para reservada.
func (i *InventoryItem) Reserve(qty int) error {
	if qty <= 0 {
		return domain.NewValidation("quantidade", "deve ser maior que zero")
	}
	if i.QuantidadeDisponivel < qty {
		return domain.NewInsufficientStock(i.Codigo, qty, i.QuantidadeDisponivel)
	}
	i.QuantidadeDisponivel -= qty
	i.QuantidadeReservada += qty
	i.RefreshStatus()
	return nil
}

// Release devolve qty reservadas para disponível.
func (i *InventoryItem) Release(qty int) error {
	if qty <= 0 {
		return domain.NewValidation("quantidade", "deve ser maior que zero")
	}
	if i.QuantidadeReservada < qty {
		return domain.NewInsufficientStock(i.Codigo, qty, i.QuantidadeReservada)
	}
	i.QuantidadeReservada -= qty
	i.QuantidadeDisponivel += qty
	i.RefreshStatus()
	return nil
}

// Consume baixa qty reservadas do total (conclusão de ordem).
func (i *InventoryItem) Consume(qty int) error {
	if qty <= 0 {
		return domain.NewValidation("quantidade", "deve ser maior que zero")
	}
	if i.QuantidadeReservada < qty || i.Quantidade < qty {
		return domain.NewInsufficientStock(i.Codigo, qty, min(i.QuantidadeReservada, i.Quantidade))
	}
	i.QuantidadeReservada -= qty
	i.Quantidade -= qty
	i.RefreshStatus()
	return nil
}

// Withdraw retirada direta de um balde (disponível ou avaria). Reservadas pertencem às ordens.
func (i *InventoryItem) Withdraw(bucket Bucket, qty int) error {
	// fora de 1..quantidade é sempre estoque insuficiente
	if qty <= 0 || qty > i.Quantidade {
		return domain.NewInsufficientStock(i.Codigo, qty, i.Quantidade)
	}
	switch bucket {
	case BucketDisponivel, "":
		if qty > i.QuantidadeDisponivel {
			return domain.NewInsufficientStock(i.Codigo, qty, i.QuantidadeDisponivel)
		}
		i.QuantidadeDisponivel -= qty
	case BucketAvaria:
		if qty > i.QuantidadeAvaria {
			return domain.NewInsufficientStock(i.Codigo, qty, i.QuantidadeAvaria)
		}
		i.QuantidadeAvaria -= qty
	default:
		return domain.NewValidation("balde", fmt.Sprintf("balde %q inválido", bucket))
	}
	i.Quantidade -= qty
	i.RefreshStatus()
	return nil
}

// Clone cópia independente (ponteiros decimais são imutáveis na prática).
func (i *InventoryItem) Clone() *InventoryItem {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
