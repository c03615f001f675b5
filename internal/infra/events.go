package infra

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel names for change notifications consumed by the presentation layer.
const (
	CanalInventario = "eventos:inventario"
	CanalVentas     = "eventos:ventas"
	CanalClientes   = "eventos:clientes"
	CanalCaja       = "eventos:caja"
)

// Events publishes change notifications over Redis pub/sub so connected POS
// screens refresh in near real time. Publishing is strictly best-effort: the
// ledger's correctness never depends on a notification landing, so failures
// are logged and swallowed.
type Events struct {
	rdb *redis.Client
}

// NewEvents returns a publisher; a nil client yields a no-op publisher, which
// keeps unit tests free of Redis.
func NewEvents(rdb *redis.Client) *Events {
	return &Events{rdb: rdb}
}

// Publish sends a JSON payload on the given channel.
func (e *Events) Publish(ctx context.Context, canal string, payload interface{}) {
	if e == nil || e.rdb == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Str("canal", canal).Err(err).Msg("evento no serializable")
		return
	}
	if err := e.rdb.Publish(ctx, canal, data).Err(); err != nil {
		log.Warn().Str("canal", canal).Err(err).Msg("no se pudo publicar evento")
	}
}
