package entity

import "time"

// Entidades e ações publicadas após commit.
const (
	EventEntityItem      = "item"
	EventEntityOrdem     = "ordem"
	EventEntityMovimento = "movimento"
	EventEntityTorre     = "torre"

	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ChangeEvent notificação de alteração para clientes conectados.
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}
