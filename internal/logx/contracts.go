package logx

import "time"

// Logger is the structured logger passed through every layer.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is a single key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// dateLayout matches the YYYY-MM-DD dates used by duty logs and log sheets.
const dateLayout = "2006-01-02"

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Date logs the calendar day of t.
func Date(key string, t time.Time) Field { return Field{Key: key, Value: t.Format(dateLayout)} }

// Err attaches err under the "err" key.
func Err(err error) Field { return Field{Key: "err", Value: err} }
