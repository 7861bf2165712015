// Package logging sets up the zerolog console logger used for diagnostics.
//
// Status lines that are part of the command contract are printed directly;
// this logger only carries debug and error detail.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// New returns a console logger writing to w, at debug level when verbose.
func New(w io.Writer, verbose bool) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		return eris.ToString(err, true)
	}

	_, isFile := w.(*os.File)
	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !isFile,
		TimeFormat: time.TimeOnly,
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
