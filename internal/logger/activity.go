package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Recorder receives pipeline milestones and errors.
type Recorder interface {
	Record(message string)
}

// FileConfig describes the activity log file and its rotation limits.
type FileConfig struct {
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// ActivityFormatter renders entries as "<timestamp> - <message>\n".
type ActivityFormatter struct{}

// Format implements logrus.Formatter.
func (ActivityFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.Grow(len(TimestampFormat) + len(entry.Message) + 4)
	b.WriteString(entry.Time.UTC().Format(TimestampFormat))
	b.WriteString(" - ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// ActivityLog is the process-wide append-only activity log. Every entry goes
// to the file sink and is mirrored on the console logger.
type ActivityLog struct {
	file    *logrus.Logger
	console *logrus.Entry
	closer  io.Closer
}

// NewActivityLog opens (or creates) the activity file in append mode.
func NewActivityLog(cfg FileConfig, console *logrus.Logger) *ActivityLog {
	sink := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	return newActivityLog(sink, sink, console)
}

func newActivityLog(w io.Writer, closer io.Closer, console *logrus.Logger) *ActivityLog {
	file := logrus.New()
	file.SetOutput(w)
	file.SetFormatter(ActivityFormatter{})
	file.SetLevel(logrus.InfoLevel)

	return &ActivityLog{
		file:    file,
		console: logrus.NewEntry(console).WithField("component", "activity"),
		closer:  closer,
	}
}

// Record appends one entry.
func (a *ActivityLog) Record(message string) {
	a.file.Info(message)
	a.console.Info(message)
}

// WithFields returns a Recorder that tags console output with fields.
// File entries stay in the plain activity format.
func (a *ActivityLog) WithFields(fields logrus.Fields) Recorder {
	return &ActivityLog{
		file:    a.file,
		console: a.console.WithFields(fields),
		closer:  a.closer,
	}
}

// Close releases the file sink.
func (a *ActivityLog) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Discard is a Recorder that drops everything.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(string) {}
