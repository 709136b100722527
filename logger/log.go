package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	CategoryField = "category"
)

const (
	CategoryRegistry  = "registry"
	CategorySelection = "selection"
	CategoryDispatch  = "dispatch"
	CategoryProbe     = "probe"
	CategoryStore     = "store"
	CategoryBot       = "bot"
)

func WithCategory(category string) func(e *zerolog.Event) {
	return func(e *zerolog.Event) {
		e.Str(CategoryField, category)
	}
}

func StdLogger() *zerolog.Logger {
	outPut := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    false,
		TimeFormat: time.DateTime,
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s: ", i)
		},
		FieldsOrder: []string{"endpoint", "request", "response"},
	}
	log := zerolog.New(outPut).With().Timestamp().Logger()

	return &log
}

// NewStdLog prints one request/response exchange on the console logger.
func NewStdLog(endpoint string, req []byte, result []byte) {
	log := StdLogger()
	event := log.Info().Str("endpoint", endpoint)
	if len(req) > 0 {
		event = event.RawJSON("request", req)
	}
	if len(result) > 0 {
		event = event.RawJSON("response", result)
	}
	event.Send()
}
