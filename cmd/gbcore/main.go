package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/trace"
	"github.com/thelolagemann/gbcore/pkg/trace/web"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, runs the ROM and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("gbcore", flag.ContinueOnError)
	flags.SetOutput(stderr)

	romFile := flags.String("rom", "", "The rom file to load (.gb, .gbc, .gz, .zip or .7z)")
	bootFile := flags.String("boot", "", "The boot rom file to load")
	steps := flags.Int("steps", 0, "The number of instructions to execute, 0 runs until interrupted")
	strict := flags.Bool("strict", false, "Refuse roms that fail header validation")
	traceSteps := flags.Bool("trace", false, "Log every executed instruction")
	traceFile := flags.String("trace-file", "", "Write a brotli compressed trace to the given file")
	traceAddr := flags.String("trace-addr", "", "Serve a websocket trace stream on the given address")
	pprofAddr := flags.String("pprof", "", "Serve pprof on the given address")
	postBoot := flags.Bool("post-boot", false, "Start with the registers the boot rom leaves behind")
	protectROM := flags.Bool("protect-rom", false, "Drop writes to the rom area")
	echoRAM := flags.Bool("echo-ram", false, "Mirror work ram into 0xE000 - 0xFDFF")
	logLevel := flags.String("log-level", "info", "The log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *romFile == "" {
		fmt.Fprintln(stderr, "gbcore: -rom is required")
		flags.Usage()
		return 2
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "gbcore: %v\n", err)
		return 2
	}
	if *traceSteps {
		level = logrus.DebugLevel
	}
	logOpts := []log.Opt{log.WithLevel(level), log.WithOutput(stderr)}
	if f, ok := stderr.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		logOpts = append(logOpts, log.WithJSON())
	}
	logger := log.New(logOpts...)

	if *pprofAddr != "" {
		go func() {
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				logger.Errorf("pprof: %v", err)
			}
		}()
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("loading rom: %v", err)
		return 1
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *strict {
		opts = append(opts, gameboy.Strict())
	}
	if *postBoot {
		opts = append(opts, gameboy.PostBootState())
	}
	if *bootFile != "" {
		raw, err := utils.LoadFile(*bootFile)
		if err != nil {
			logger.Errorf("loading boot rom: %v", err)
			return 1
		}
		bootROM, err := boot.LoadBootROM(raw)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		opts = append(opts, gameboy.WithBootROM(bootROM))
	}
	if *protectROM {
		opts = append(opts, gameboy.WithROMProtection())
	}
	if *echoRAM {
		opts = append(opts, gameboy.WithEchoRAM())
	}
	if *traceSteps {
		opts = append(opts, gameboy.WithTracer(trace.NewLogSink(logger)))
	}
	if *traceFile != "" {
		sink, err := trace.NewFileSink(*traceFile)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		opts = append(opts, gameboy.WithTracer(sink))
	}
	if *traceAddr != "" {
		hub := web.NewHub(logger)
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/trace", hub)
		srv := &http.Server{Addr: *traceAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("trace server: %v", err)
			}
		}()
		defer srv.Close()
		logger.Infof("serving traces on ws://%s/trace", *traceAddr)

		opts = append(opts, gameboy.WithTracer(hub))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	defer func() {
		if err := gb.Close(); err != nil {
			logger.Errorf("closing tracer: %v", err)
		}
	}()
	fmt.Fprintln(stdout, gb.Header.String())

	executed, err := gb.Run(ctx, *steps)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Infof("interrupted after %d steps", executed)
	case err != nil:
		// the machine has already logged the fatal report
		return 1
	default:
		logger.Infof("executed %d steps", executed)
	}
	fmt.Fprintln(stdout, gb.CPU.Snapshot())

	return 0
}
