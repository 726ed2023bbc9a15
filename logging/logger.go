// Package logging sets up named log15 loggers that write to size-rotated files.
package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	log "gopkg.in/inconshreveable/log15.v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// MaxSizeMB is the size of a log segment before it is rolled over
	MaxSizeMB = 5
	// MaxBackups is the number of rolled segments kept on disk
	MaxBackups = 2

	timeFormat = "2006-01-02 15:04:05,000"
)

type sink struct {
	logger log.Logger
	file   *lumberjack.Logger
}

var (
	mu    sync.Mutex
	sinks = make(map[string]*sink)
)

// Setup returns the logger registered under name, creating it with a rotating
// file sink at filePath on first use. Later calls for the same name keep the
// existing sink and only change the level.
func Setup(name, filePath string, level log.Lvl) log.Logger {
	mu.Lock()
	defer mu.Unlock()

	s, ok := sinks[name]
	if !ok {
		s = &sink{
			logger: log.New(),
			file: &lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    MaxSizeMB,
				MaxBackups: MaxBackups,
			},
		}
		sinks[name] = s
	}

	s.logger.SetHandler(log.LvlFilterHandler(level, log.StreamHandler(s.file, Format())))
	return s.logger
}

// Close flushes and closes every registered sink and forgets them
func Close() {
	mu.Lock()
	defer mu.Unlock()

	for name, s := range sinks {
		s.logger.SetHandler(log.DiscardHandler())
		_ = s.file.Close()
		delete(sinks, name)
	}
}

// Format renders records as "timestamp - LEVEL - message key=value".
func Format() log.Format {
	return log.FormatFunc(func(r *log.Record) []byte {
		var b bytes.Buffer
		fmt.Fprintf(&b, "%s - %s - %s", r.Time.Format(timeFormat), levelName(r.Lvl), r.Msg)
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			fmt.Fprintf(&b, " %v=%v", r.Ctx[i], r.Ctx[i+1])
		}
		b.WriteByte('\n')
		return b.Bytes()
	})
}

func levelName(l log.Lvl) string {
	switch l {
	case log.LvlDebug:
		return "DEBUG"
	case log.LvlInfo:
		return "INFO"
	case log.LvlWarn:
		return "WARNING"
	case log.LvlError:
		return "ERROR"
	case log.LvlCrit:
		return "CRITICAL"
	}
	return strings.ToUpper(l.String())
}

// ParseLevel maps a level name such as "info" or "warning" to a log15 level
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.LvlDebug, nil
	case "info", "":
		return log.LvlInfo, nil
	case "warn", "warning":
		return log.LvlWarn, nil
	case "error":
		return log.LvlError, nil
	case "crit", "critical":
		return log.LvlCrit, nil
	}
	return log.LvlInfo, fmt.Errorf("unknown log level %q", s)
}
