// The serial-to-TCP bridge. It exposes a CSv1-OL8 device on a local serial
// port to remote TCP clients, padding client bytes to whole frames and
// relaying device responses back.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/csv1ol8/csv1-go/bridge"
	"github.com/csv1ol8/csv1-go/config"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/transport"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:8080", "listen address")
	configPath := flag.String("config", "csv1.yaml", "settings file path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <serial device>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := logger.InfoLevel
	if *verbose || settings.Verbose {
		level = logger.DebugLevel
	}
	log := logger.NewSlog(level, false)

	tcfg := transport.DefaultConfig()
	tcfg.ReadTimeout = settings.ReadTimeout()
	tcfg.WriteTimeout = settings.WriteTimeout()

	b := bridge.New(flag.Arg(0), tcfg, bridge.WithLogger(log))

	l, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Error("listen failed", "addr", *addr, "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- b.Serve(l) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		_ = b.Close()
	case err := <-errCh:
		if err != nil {
			log.Error("bridge failed", "error", err)
			os.Exit(1)
		}
	}
}
