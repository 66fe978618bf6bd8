// Command volume drives the ALSA master volume with the first fader of a
// Launch Control XL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/trace"
	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/leandrodaf/launchboard/sdk/launch"
)

func main() {
	path := flag.String("device", contracts.DefaultDevicePath, "MIDI device path (or coremidi:<name> on macOS)")
	debug := flag.Bool("debug", false, "Log every MIDI message")
	tracePath := flag.String("trace", "", "Write a CBOR protocol trace to this file")
	flag.Parse()

	log := logger.NewZapLogger()
	level := contracts.InfoLevel
	if *debug {
		level = contracts.DebugLevel
	}

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithDevicePath(*path),
	}
	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			log.Fatal("Failed to create trace file", log.Field().Error("error", err))
		}
		defer f.Close()
		tracer := trace.NewCBORTracer(f, log)
		log.Info("Tracing protocol", log.Field().String("file", *tracePath), log.Field().String("run", tracer.RunID()))
		opts = append(opts, contracts.WithTracer(tracer))
	}

	board, err := launch.NewLaunchControlXL(opts...)
	if err != nil {
		log.Fatal("Failed to create board", log.Field().Error("error", err))
	}

	fader, err := launch.LCXL2.Inputs.Fader(0)
	if err != nil {
		log.Fatal("Unknown fader", log.Field().Error("error", err))
	}

	_, err = board.RegisterNamed("volume", func(ctx context.Context, msg contracts.Message, _ contracts.Device) error {
		return setVolume(ctx, msg.Value)
	}, contracts.NewFilter(contracts.Input(fader)))
	if err != nil {
		log.Fatal("Failed to register handler", log.Field().Error("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := board.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Board stopped", log.Field().Error("error", err))
	}
}

// setVolume sets the ALSA master volume to value percent, capped at 100.
func setVolume(ctx context.Context, value byte) error {
	percent := min(int(value), 100)
	out, err := exec.CommandContext(ctx, "amixer", "sset", "Master", fmt.Sprintf("%d%%", percent)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("amixer: %w: %s", err, out)
	}
	return nil
}
