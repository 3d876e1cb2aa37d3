package app

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

// eventLogger routes fx events to zerolog.
type eventLogger struct{}

func (eventLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			log.Error().Err(e.Err).Msg("fx: provide failed")
			return
		}
		for _, t := range e.OutputTypeNames {
			log.Debug().Str("type", t).Str("constructor", e.ConstructorName).Msg("fx: provided")
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			log.Error().Err(e.Err).Msg("fx: supply failed")
			return
		}
		log.Debug().Str("type", e.TypeName).Msg("fx: supplied")
	case *fxevent.Invoked:
		if e.Err != nil {
			log.Error().Err(e.Err).Str("function", e.FunctionName).Msg("fx: invoke failed")
		}
	}
}
