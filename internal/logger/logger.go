package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tag prefixes every console line.
const Tag = "[WESMUN]"

var _log = logrus.New()

// Options controls where and how verbosely the global logger writes.
type Options struct {
	Debug bool
	Out   io.Writer
	// File enables a rotated copy of the log next to Out.
	File string
}

// Init initializes the global logger with output writer and debug level.
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, rotator)
	}
	_log.SetOutput(out)
	if opts.Debug {
		_log.SetLevel(logrus.DebugLevel)
		_log.SetFormatter(&taggedFormatter{inner: &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}})
	} else {
		_log.SetLevel(logrus.InfoLevel)
		_log.SetFormatter(&consoleFormatter{})
	}
}

// Log returns a standard logger entry to use across packages.
func Log() *logrus.Entry {
	return logrus.NewEntry(_log)
}

// WithFields returns a logger entry with provided fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log().WithFields(fields)
}

type taggedFormatter struct {
	inner logrus.Formatter
}

func (f *taggedFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	line, err := f.inner.Format(entry)
	if err != nil {
		return nil, err
	}
	return append([]byte(Tag+" "), line...), nil
}

// consoleFormatter prints "[WESMUN] message key=value ..." with fields sorted by key.
type consoleFormatter struct{}

func (consoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(Tag)
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
