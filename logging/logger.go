package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/iost-studio/contractkit/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is configured when the CLI starts. Each package
// should create its own sub-logger. This allows to create unique logging instances depending on the use case.
var GlobalLogger = NewLogger(zerolog.Disabled)

// Logger describes a custom logging object that can log events to any arbitrary channel in structured, unstructured,
// or unstructured and colorized format.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// structuredLogger describes a logger that will be used to output structured logs to any arbitrary channel.
	structuredLogger zerolog.Logger

	// structuredWriters describes the various channels that the output from the structuredLogger will go to.
	structuredWriters []io.Writer

	// unstructuredLogger describes a logger that will be used to stream un-colorized, unstructured output to any
	// arbitrary channel.
	unstructuredLogger zerolog.Logger

	// unstructuredWriters describes the various channels that the output from the unstructuredLogger will go to.
	unstructuredWriters []io.Writer

	// unstructuredColorLogger describes a logger that will be used to stream colorized, unstructured output to any
	// arbitrary channel.
	unstructuredColorLogger zerolog.Logger

	// plainColorLogger streams to the same channels as unstructuredColorLogger without ANSI codes. It is used while
	// coloring is disabled through colors.DisableColor.
	plainColorLogger zerolog.Logger

	// unstructuredColorWriters describes the various channels that the output from the unstructuredColoredLogger will
	// go to.
	unstructuredColorWriters []io.Writer

	// context holds the key-value pairs attached by NewSubLogger, in order.
	context [][2]string
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. By default, a logger that is instantiated
// with this function is not usable until a log channel is added. To add or remove channels that the logger
// streams logs to, use the Logger.AddWriter and Logger.RemoveWriter functions.
func NewLogger(level zerolog.Level) *Logger {
	return &Logger{
		level:                    level,
		structuredLogger:         zerolog.New(nil).Level(zerolog.Disabled),
		structuredWriters:        make([]io.Writer, 0),
		unstructuredLogger:       zerolog.New(nil).Level(zerolog.Disabled),
		unstructuredWriters:      make([]io.Writer, 0),
		unstructuredColorLogger:  zerolog.New(nil).Level(zerolog.Disabled),
		plainColorLogger:         zerolog.New(nil).Level(zerolog.Disabled),
		unstructuredColorWriters: make([]io.Writer, 0),
		context:                  make([][2]string, 0),
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have their own unique logger so that parsing of logs is "grep-able" based on some key
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	subLogger := &Logger{
		level:                    l.level,
		structuredWriters:        l.structuredWriters,
		unstructuredWriters:      l.unstructuredWriters,
		unstructuredColorWriters: l.unstructuredColorWriters,
		context:                  append(append(make([][2]string, 0, len(l.context)+1), l.context...), [2]string{key, value}),
	}
	subLogger.rebuild()
	return subLogger
}

// AddWriter will add a writer to which log output will go to. If the format is structured then the writer is added
// to the structured channels. If the format is unstructured, the writer is added to the unstructured channels,
// colorized ones if colored is set. If the writer already exists, this function is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writerList(format, colored)
	for _, w := range *writers {
		if w == writer {
			return
		}
	}
	*writers = append(*writers, writer)
	l.rebuild()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. The writer is removed from
// the channel described by format and colored. If the writer does not exist, this function is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writerList(format, colored)
	for i, w := range *writers {
		if w == writer {
			*writers = append((*writers)[:i:i], (*writers)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// writerList returns a pointer to the writer list for the provided channel.
func (l *Logger) writerList(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writer lists, level and context.
func (l *Logger) rebuild() {
	l.structuredLogger = l.withContext(newZerolog(l.structuredWriters, l.level, func(w io.Writer) io.Writer {
		return w
	}).With().Timestamp())

	l.unstructuredLogger = l.withContext(newZerolog(l.unstructuredWriters, l.level, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level)
	}).With())

	l.unstructuredColorLogger = l.withContext(newZerolog(l.unstructuredColorWriters, l.level, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: false}, l.level)
	}).With())

	l.plainColorLogger = l.withContext(newZerolog(l.unstructuredColorWriters, l.level, func(w io.Writer) io.Writer {
		return setupDefaultFormatting(zerolog.ConsoleWriter{Out: w, NoColor: true}, l.level)
	}).With())
}

// withContext applies the sub-logger key-value context to a logger context.
func (l *Logger) withContext(ctx zerolog.Context) zerolog.Logger {
	for _, kv := range l.context {
		ctx = ctx.Str(kv[0], kv[1])
	}
	return ctx.Logger()
}

// newZerolog creates a zerolog.Logger writing to every writer, each wrapped by the provided function. A logger with
// no writers is disabled.
func newZerolog(writers []io.Writer, level zerolog.Level, wrap func(io.Writer) io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return zerolog.New(nil).Level(zerolog.Disabled)
	}
	wrapped := make([]io.Writer, len(writers))
	for i, w := range writers {
		wrapped[i] = wrap(w)
	}
	return zerolog.New(zerolog.MultiLevelWriter(wrapped...)).Level(level)
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.rebuild()
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error is a wrapper function that will log an error event.
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic is a wrapper function that will log a panic event and then panic with the non-colorized message
func (l *Logger) Panic(args ...any) {
	l.log(zerolog.PanicLevel, args...)
	_, msg, _, _ := buildMsgs(args...)
	panic(msg)
}

// log builds the messages for each channel and sends them out at the provided level.
func (l *Logger) log(level zerolog.Level, args ...any) {
	// Build the messages and retrieve any error or associated structured log info
	colorMsg, noColorMsg, err, info := buildMsgs(args...)

	// Instantiate log events
	structuredLog := l.structuredLogger.WithLevel(level)
	unstructuredLog := l.unstructuredLogger.WithLevel(level)
	colorLogger := l.unstructuredColorLogger
	if !colors.Enabled() {
		colorLogger = l.plainColorLogger
	}
	colorLog := colorLogger.WithLevel(level)

	// Chain the error
	withStack := level == zerolog.PanicLevel || l.level <= zerolog.DebugLevel
	chainError([]*zerolog.Event{structuredLog, unstructuredLog, colorLog}, err, withStack)

	// Chain the structured log info and messages and send off the logs
	chainStructuredLogInfoAndMsgs(structuredLog, unstructuredLog, colorLog, info, colorMsg, noColorMsg)
}

// buildMsgs describes a function that takes in a variadic list of arguments of any type and returns two strings and,
// optionally, an error and a StructuredLogInfo object. The first string will be a colorized-string that can be used for
// console logging while the second string will be a non-colorized one that can be used for file/structured logging.
// The error and the StructuredLogInfo can be used to add additional context to log messages
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	// Guard clause
	if len(args) == 0 {
		return "", "", nil, nil
	}

	// Initialize the base color context, the string buffers and the structured log info object
	colorCtx := colors.Reset
	colorOutput := make([]string, 0)
	noColorOutput := make([]string, 0)
	var info StructuredLogInfo
	var err error

	// Iterate through each argument in the list and switch on type
	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			// If the argument is a color function, switch the current color context
			colorCtx = t
		case StructuredLogInfo:
			// Note that only one structured log info can be provided for each log message
			info = t
		case error:
			// Note that only one error can be provided for each log message
			err = t
		default:
			// In the base case, append the object to the two string buffers. The colorized string buffer will have the
			// current color context applied to it.
			colorOutput = append(colorOutput, colorCtx(t))
			noColorOutput = append(noColorOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(colorOutput, ""), strings.Join(noColorOutput, ""), err, info
}

// chainError is a helper function that chains an error to each of the provided events. If withStack is true, then a
// stack trace is added as well.
func chainError(events []*zerolog.Event, err error, withStack bool) {
	for _, event := range events {
		// Even if err is nil, there will not be a panic here
		event.Err(err)
		if withStack {
			event.Stack()
		}
	}
}

// chainStructuredLogInfoAndMsgs is a helper function that chains any StructuredLogInfo to the events, adds the
// associated messages, and sends out the logs to their respective channels.
func chainStructuredLogInfoAndMsgs(structuredLog *zerolog.Event, unstructuredLog *zerolog.Event, colorLog *zerolog.Event,
	info StructuredLogInfo, colorMsg string, noColorMsg string) {
	// If we are provided a structured log info object, add that as a key-value pair to the events
	if info != nil {
		structuredLog.Any("info", info)
		unstructuredLog.Any("info", info)
		colorLog.Any("info", info)
	}

	// Append the messages to each event. This will also result in the log events being sent out to their respective
	// streams. The structured and unstructured messages are deferred so that every channel receives a panic log.
	defer structuredLog.Msg(noColorMsg)
	defer unstructuredLog.Msg(noColorMsg)
	colorLog.Msg(colorMsg)
}

// setupDefaultFormatting will update the console logger's formatting to the contractkit standard
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i interface{}) string {
		return ""
	}

	// We will define a custom format for each level
	writer.FormatLevel = func(i any) string {
		// Create a level object for better switch logic
		s, _ := i.(string)
		level, err := zerolog.ParseLevel(s)
		if err != nil {
			return s
		}

		// Switch on the level and return a custom, colored string
		switch level {
		case zerolog.TraceLevel:
			return colors.CyanBold(zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colors.BlueBold(zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			// Info logs are marked with a bold, green arrow
			return colors.GreenBold(colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colors.YellowBold(zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return colors.RedBold(zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return colors.RedBold(zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return colors.RedBold(zerolog.LevelPanicValue)
		default:
			return s
		}
	}

	// If we are above debug level, we want to get rid of the `module` component when logging to console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
