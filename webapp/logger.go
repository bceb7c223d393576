package webapp

import "github.com/rs/zerolog"

// ZerologAdapter bridges the accounts.Logger seam to a zerolog logger.
type ZerologAdapter struct {
	log zerolog.Logger
}

func NewZerologAdapter(log zerolog.Logger) ZerologAdapter {
	return ZerologAdapter{log: log}
}

func (z ZerologAdapter) Debug(msg string, args ...any) { emit(z.log.Debug(), msg, args) }
func (z ZerologAdapter) Info(msg string, args ...any)  { emit(z.log.Info(), msg, args) }
func (z ZerologAdapter) Warn(msg string, args ...any)  { emit(z.log.Warn(), msg, args) }
func (z ZerologAdapter) Error(msg string, args ...any) { emit(z.log.Error(), msg, args) }

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
