package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var applicationName string = ""

// ParseLevel maps the configured level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "FATAL":
		return zerolog.FatalLevel, nil
	case "PANIC":
		return zerolog.PanicLevel, nil
	case "DISABLED":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("incorrect log level %s", name)
}

// InitLogger sets the global level and sends console formatted logs to out.
// It panics on an unknown level.
func InitLogger(level, appName string, out io.Writer) {
	applicationName = appName
	lvl, err := ParseLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: true})
	if err != nil {
		Panic("Logger initialization failed", err)
	}
	zerolog.SetGlobalLevel(lvl)
	Debug("Logger initialized!")
}

func Debug(message string) {
	log.Debug().Str("app", applicationName).Msg(message)
}

func Info(message string) {
	log.Info().Str("app", applicationName).Msg(message)
}

func Error(message string, err error) {
	log.Error().Str("app", applicationName).Err(err).Msg(message)
}

func Panic(message string, err error) {
	log.Panic().Str("app", applicationName).Err(err).Msg(message)
}
