package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/estoque-tarugos/internal/domain/entity"
)

// eventSource implementado por *events.Broker.
type eventSource interface {
	Subscribe() (<-chan entity.ChangeEvent, func())
}

// EventsHandler envia as alterações confirmadas ao navegador (Server-Sent Events).
type EventsHandler struct {
	source    eventSource
	keepAlive time.Duration
}

func NewEventsHandler(source eventSource) *EventsHandler {
	return &EventsHandler{source: source, keepAlive: 25 * time.Second}
}

// Stream godoc
// @Summary      Fluxo de alterações (text/event-stream)
// @Tags         eventos
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ch, cancel := h.source.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": conectado\n\n")
		if w.Flush() != nil {
			return
		}
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Entity, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// cliente desconectado
			if w.Flush() != nil {
				return
			}
		}
	}))
	return nil
}
