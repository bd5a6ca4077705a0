// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
	sugar  = logger.Sugar()

	// level 所有 core 共用，热更新只改这里
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger 提供 zap.Logger 实例
func ProvideLogger(conf *Conf) (*zap.Logger, error) {
	return NewLog(conf)
}

// Conf holds logger configuration options.
type Conf struct {
	Output     string `mapstructure:"output"`
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"` // 日志文件名，为空时使用默认值
	Level      string `mapstructure:"level"`
	KeepHours  int    `mapstructure:"keepHours"`  // 日志保留天数
	RotateSize int    `mapstructure:"rotateSize"` // 单个日志文件最大大小（MB）
	RotateNum  int    `mapstructure:"rotateNum"`  // 保留的日志文件数量
}

// SetDefaults 返回默认配置
func SetDefaults() *Conf {
	return &Conf{
		Output:     "stdout",
		Path:       "./logs",
		Filename:   defaultFilename,
		Level:      "INFO",
		KeepHours:  7,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// Validate 验证配置，文件输出时补全轮转参数
func (c *Conf) Validate() error {
	if c.Output == "file" {
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is 'file'")
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepHours <= 0 {
			c.KeepHours = 7
		}
	}
	return nil
}

// NewLog initializes the global logger and returns it.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if conf == nil {
		conf = SetDefaults()
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	var writeSyncer zapcore.WriteSyncer
	switch conf.Output {
	case "file":
		writeSyncer = getFileLogWriter(conf)
	default:
		writeSyncer = zapcore.AddSync(os.Stdout)
	}

	level.SetLevel(parseLogLevel(conf.Level))
	core := zapcore.NewCore(getEncoder(), writeSyncer, level)
	newLogger := zap.New(core, zap.AddCallerSkip(1), zap.AddCaller())

	mu.Lock()
	logger = newLogger
	sugar = newLogger.Sugar()
	mu.Unlock()

	sugar.Debugw("log initialized",
		"output", conf.Output,
		"level", conf.Level,
	)

	return newLogger, nil
}

// MustInit 初始化全局日志实例，失败则 panic
func MustInit(conf *Conf) {
	if _, err := NewLog(conf); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

// GetLogger 获取全局 SugaredLogger 实例
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// GetLevel 获取当前日志级别
func GetLevel() zapcore.Level {
	return level.Level()
}

// SetLevel 运行中调整日志级别，无法识别的级别按 INFO 处理
func SetLevel(l string) {
	level.SetLevel(parseLogLevel(l))
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewDevelopmentEncoderConfig()

	encoderConfig.TimeKey = "time"
	encoderConfig.LevelKey = "level"
	encoderConfig.NameKey = "logger"
	encoderConfig.CallerKey = "caller"
	encoderConfig.MessageKey = "msg"
	encoderConfig.StacktraceKey = "stacktrace"
	encoderConfig.LineEnding = zapcore.DefaultLineEnding
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = customTimeEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeName = zapcore.FullNameEncoder

	return zapcore.NewConsoleEncoder(encoderConfig)
}

// customTimeEncoder formats the time as 2006-01-02 15:04:05.
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

// parseLogLevel converts a string level to a zapcore.Level, case-insensitive.
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
