// The TCP device simulator. It models a CSv1-OL8 controller well enough to
// develop the host tools without hardware: every 4-byte frame is applied to
// a shared device model and acknowledged with one status word.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/sim"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:8080", "listen address")
	autoDisable := flag.Duration("auto-disable", 15*time.Second,
		"idle window after which GPIO 0 is forced off (0 disables)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := logger.InfoLevel
	if *verbose {
		level = logger.DebugLevel
	}
	log := logger.NewSlog(level, false)

	opts := []sim.Option{sim.WithLogger(log)}
	if *autoDisable > 0 {
		opts = append(opts, sim.WithGpioAutoDisable(*autoDisable))
	}

	s, err := sim.New(*addr, opts...)
	if err != nil {
		log.Error("simulator start failed", "error", err)
		os.Exit(1)
	}

	s.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	_ = s.Close()
}
