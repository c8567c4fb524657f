package audit

import "github.com/rs/zerolog"

// Actor hodnoty pro audit záznamy.
const (
	ActorPublic = "public"
	ActorAdmin  = "admin"
)

type Event struct {
	AdminID  *uint
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher zapisuje audit asynchronně, aby zápis logu
// nikdy nezdržel ani neshodil request.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.AdminID,
			ev.Actor,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// plná fronta → audit zahodíme, API nesmí spadnout
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
