package log

import (
	"fmt"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// rotation settings for the file output
var (
	FileMaxSizeMB  = 10
	FileMaxBackups = 3
	FileMaxAgeDays = 28
)

func fileOutput(path string) (io.Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("file output needs a file path")
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    FileMaxSizeMB,
		MaxBackups: FileMaxBackups,
		MaxAge:     FileMaxAgeDays,
	}, nil
}
