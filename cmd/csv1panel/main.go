// The interactive control panel. Each input line is one control key:
// left/right select a DAC channel, up/down step it, space is the large step,
// '-'/'=' are fine steps, digits pick the table offset and z x c v b n m ,
// toggle GPIO 0-7. The panel clamps every value before it touches the wire,
// keeps the keepalive clock fed, and releases any GPIO lines it set on exit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/csv1ol8/csv1-go/config"
	"github.com/csv1ol8/csv1-go/csv1"
	"github.com/csv1ol8/csv1-go/logger"
	"github.com/csv1ol8/csv1-go/panel"
	"github.com/csv1ol8/csv1-go/session"
	"github.com/csv1ol8/csv1-go/transport"
)

var log logger.Logger

func main() {
	configPath := flag.String("config", "csv1.yaml", "settings file path")
	step := flag.Uint("step", 0, "per-keypress DAC step (overrides settings file)")
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

	if *step > 0 && *step <= 65535 {
		settings.Step = uint16(*step)
	}

	level := logger.InfoLevel
	if *verbose || settings.Verbose {
		level = logger.DebugLevel
	}
	log = logger.NewSlog(level, false)

	if err := run(flag.Arg(0), settings); err != nil {
		log.Error("panel failed", "error", err)
		os.Exit(1)
	}
}

func run(rawTarget string, settings config.Settings) error {
	target, err := transport.ResolveTarget(rawTarget)
	if err != nil {
		return err
	}

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

	rl, err := readline.New("csv1> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	state := panel.NewState(settings.Step)

	err = eventLoop(sess, state, rl)

	releaseGpio(sess, state)

	return err
}

// eventLoop owns the session. Readline runs on its own goroutine and feeds
// lines through a channel so keepalive ticks keep flowing while the prompt
// waits for input.
func eventLoop(sess *session.Session, state *panel.State, rl *readline.Instance) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		for {
			line, err := rl.Readline()
			if err != nil {
				readErr <- err
				return
			}

			lines <- line
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Println(state.Summary())

	for {
		select {
		case <-sigCh:
			return nil

		case now := <-ticker.C:
			if _, err := sess.Tick(now); err != nil {
				return err
			}

		case err := <-readErr:
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			return err

		case line, ok := <-lines:
			if !ok {
				return nil
			}

			if line == "quit" || line == "exit" {
				return nil
			}

			if err := handleKey(sess, state, line); err != nil {
				return err
			}
		}
	}
}

func handleKey(sess *session.Session, state *panel.State, key string) error {
	if key == "" {
		fmt.Println(state.Summary())
		return nil
	}

	ev, ok := panel.MapKey(key)
	if !ok {
		log.Warn("unknown key", "key", key)
		return nil
	}

	cmd, send := state.Apply(ev)
	if send {
		if _, err := sess.Send(cmd); err != nil {
			return err
		}
	}

	fmt.Println(state.Summary())

	return nil
}

// releaseGpio clears any GPIO lines the panel drove on. Failures are logged;
// the connection may already be gone.
func releaseGpio(sess *session.Session, state *panel.State) {
	for _, pin := range state.SetGpioPins() {
		if _, err := sess.Send(csv1.GpioSet{Pin: pin, State: false}); err != nil {
			log.Warn("GPIO release failed", "pin", pin, "error", err)
			return
		}
	}
}
