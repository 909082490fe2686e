// The scripted exercise loop for a CSv1-OL8 device.
//
// It enables the output interlocks, loads demo data into lookup tables 0 and
// 1, binds two channels to them, and then ramps the remaining channels with
// direct writes at a fixed rate until interrupted. Every loop iteration
// drives the keepalive clock so the device watchdog stays fed.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csv1ol8/csv1-go/config"
	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/session"
	"github.com/csv1ol8/csv1-go/transport"
)

var log logger.Logger

func main() {
	configPath := flag.String("config", "csv1.yaml", "settings file path")
	rate := flag.Float64("rate", 0, "loop rate in Hz (overrides settings file)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <target>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "target: serial device path, ipv4:port or [ipv6]:port")
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

	if *rate > 0 {
		settings.Rate = *rate
	}

	level := logger.InfoLevel
	if *verbose || settings.Verbose {
		level = logger.DebugLevel
	}
	log = logger.NewSlog(level, false)

	if err := run(flag.Arg(0), settings); err != nil {
		log.Error("test loop failed", "error", err)
		os.Exit(1)
	}
}

func run(rawTarget string, settings config.Settings) error {
	target, err := transport.ResolveTarget(rawTarget)
	if err != nil {
		return err
	}

	log.Info("connecting", "target", rawTarget, "kind", target.Kind)

	tcfg := transport.DefaultConfig()
	tcfg.ReadTimeout = settings.ReadTimeout()
	tcfg.WriteTimeout = settings.WriteTimeout()

	tr, err := transport.Dial(target, tcfg)
	if err != nil {
		return err
	}

	scfg, err := session.NewConfig(
		session.WithKeepaliveInterval(settings.KeepaliveInterval()),
		session.WithReadResponses(settings.ReadResponses),
		session.WithLogger(log),
	)
	if err != nil {
		return err
	}

	sess := session.New(tr, scfg)
	defer sess.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := setup(sess); err != nil {
		return err
	}

	err = rampLoop(sess, settings.Rate, sigCh)

	// best-effort interlock release before closing
	if _, derr := sess.Send(csv1.GpioSet{Pin: 1, State: false}); derr != nil {
		log.Warn("GPIO 1 disable failed", "error", derr)
	}

	m := sess.Metrics()
	log.Info("done",
		"sent", m.CommandSendCount.Load(),
		"responses", m.ResponseRecvCount.Load(),
		"keepalives", m.KeepAliveSendCount.Load(),
		"readTimeouts", m.ReadTimeoutCount.Load(),
	)

	return err
}

// setup enables the interlocks, loads both demo tables and binds channels 0
// and 1 to them.
func setup(sess *session.Session) error {
	log.Info("enabling outputs")

	for _, cmd := range []csv1.Command{
		csv1.GpioSet{Pin: 0, State: true},
		csv1.GpioSet{Pin: 1, State: true},
	} {
		if _, err := sess.Send(cmd); err != nil {
			return err
		}
	}

	log.Info("loading lookup tables")

	for i := 0; i < 256; i++ {
		up := csv1.TableEntryWrite{Table: 0, Index: uint8(i), Value: uint16(i) * 257}
		down := csv1.TableEntryWrite{Table: 1, Index: uint8(i), Value: 65535 - uint16(i)*257}

		if _, err := sess.Send(up); err != nil {
			return err
		}
		if _, err := sess.Send(down); err != nil {
			return err
		}
	}

	for _, cmd := range []csv1.Command{
		csv1.AttachTable{Channel: 0, Table: 0},
		csv1.AttachTable{Channel: 1, Table: 1},
	} {
		if _, err := sess.Send(cmd); err != nil {
			return err
		}
	}

	return nil
}

// rampLoop steps channels 2-7 through a sawtooth with direct writes and
// cycles the table offset, latching each iteration with an LDAC update.
func rampLoop(sess *session.Session, rate float64, sigCh <-chan os.Signal) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()

	log.Info("ramp loop running", "rate", rate)

	var (
		value  uint16
		offset uint8
	)

	for {
		select {
		case <-sigCh:
			log.Info("interrupted")
			return nil

		case <-ticker.C:
			for ch := uint8(2); ch < 8; ch++ {
				if _, err := sess.Send(csv1.DirectDacWrite{Channel: ch, Value: value}); err != nil {
					return err
				}
			}

			if _, err := sess.Send(csv1.UseTableOffset{Offset: offset}); err != nil {
				return err
			}

			if _, err := sess.Send(csv1.LdacUpdate{}); err != nil {
				return err
			}

			if _, err := sess.Tick(time.Now()); err != nil {
				return err
			}

			value += 1024 // wraps, the sawtooth restarts
			offset = (offset + 1) % 10
		}
	}
}
