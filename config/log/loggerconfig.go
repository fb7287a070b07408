package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger  *zap.Logger
	String  = zap.String
	Any     = zap.Any
	Int     = zap.Int
	Float64 = zap.Float64
)

// logpath is the run log file path
// loglevel is the log level
func InitLogger(logpath string, loglevel string) {
	// The run log is overwritten on each invocation, like every other
	// output file.
	os.Remove(logpath)
	hook := lumberjack.Logger{
		Filename:   logpath,
		MaxSize:    10, // each log file saves 10MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   false,
	}
	write := zapcore.AddSync(&hook)
	// Set log level
	// debug can log info, debug, warn
	// info level can log warn, info
	// warn can only log warn
	// debug -> info -> warn -> error
	var level zapcore.Level
	switch loglevel {
	case "debug":
		level = zap.DebugLevel
	case "info":
		level = zap.InfoLevel
	case "error":
		level = zap.ErrorLevel
	case "warn":
		level = zap.WarnLevel
	default:
		level = zap.InfoLevel
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "linenum",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.FullCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var writes = []zapcore.WriteSyncer{write}
	// If in development environment, also output to console
	if level == zap.DebugLevel {
		writes = append(writes, zapcore.AddSync(os.Stdout))
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(writes...),
		level,
	)

	// Enable file and line number reporting
	caller := zap.AddCaller()
	development := zap.Development()
	Logger = zap.New(core, caller, development)
	Logger.Info("Logger init success")
}

// Sync flushes buffered log entries, called on every exit path.
func Sync() {
	if Logger != nil {
		Logger.Sync()
	}
}
