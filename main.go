package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/stamina/internal/config"
	"github.com/sirupsen/logrus"
)

var LOG_LEVELS = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"panic": logrus.PanicLevel,
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})

	cmd, err := config.Parse(os.Args[1:])
	if nil != err {
		logrus.Fatalf("invalid arguments: %v", err)
	}
	if level, ok := LOG_LEVELS[*config.LogLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *config.LogLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cmd); nil != err {
		logrus.Fatalln(err)
	}
}

func run(ctx context.Context, cmd string) error {
	switch cmd {
	case config.RateCmd.FullCommand():
		return rateCharts(ctx)
	case config.TraceCmd.FullCommand():
		return traceChart()
	case config.FitCmd.FullCommand():
		return fitParams(ctx)
	case config.HistoryCmd.FullCommand():
		return showHistory()
	}
	return fmt.Errorf("unknown command %q", cmd)
}
