// Package logging sets up the logrus logger shared by the other packages.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/TuftsBCB/pdbres/config"
)

var (
	mu     sync.RWMutex
	logger = logrus.StandardLogger()

	// rotating file behind logger, closed when logger is replaced
	closer io.Closer
)

// Logger returns the configured logger. Until Init is called this is the
// logrus standard logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init builds a new logger from cfg and installs it. An unparseable level
// falls back to info.
func Init(cfg config.Log) error {
	writer, fileCloser, err := getWriter(cfg.File)
	if err != nil {
		return err
	}

	l := logrus.New()
	l.SetOutput(writer)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	mu.Lock()
	prev := closer
	logger, closer = l, fileCloser
	mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			return errors.Wrap(err, "failed to close previous log file")
		}
	}
	return nil
}

// stdout alone, or stdout and a rotating file
func getWriter(file string) (io.Writer, io.Closer, error) {
	if file == "" {
		return os.Stdout, nil, nil
	}
	dir := filepath.Dir(file)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to create log dir %s", dir)
		}
	}
	fileWriter := &lumberjack.Logger{
		Filename: file,
		// megabytes
		MaxSize:    64,
		MaxBackups: 5,
		// days
		MaxAge:    14,
		LocalTime: true,
	}
	return io.MultiWriter(os.Stdout, fileWriter), fileWriter, nil
}
