// Command vegas sweeps a random colour over every knob and button light of a
// Launch Control XL each time the first button is released.
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/contracts"
	"github.com/leandrodaf/launchboard/sdk/launch"
)

func main() {
	path := flag.String("device", contracts.DefaultDevicePath, "MIDI device path (or coremidi:<name> on macOS)")
	step := flag.Duration("step", 20*time.Millisecond, "Delay between two lights of a sweep")
	flag.Parse()

	log := logger.NewZapLogger()

	board, err := launch.NewLaunchControlXL(
		contracts.WithLogger(log),
		contracts.WithDevicePath(*path),
	)
	if err != nil {
		log.Fatal("Failed to create board", log.Field().Error("error", err))
	}

	button, err := launch.LCXL2.Inputs.Button(0)
	if err != nil {
		log.Fatal("Unknown button", log.Field().Error("error", err))
	}
	lights := append(launch.LCXL2.Lights.Knobs(-1), launch.LCXL2.Lights.Buttons(-1)...)

	_, err = board.RegisterNamed("vegas", func(_ context.Context, _ contracts.Message, dev contracts.Device) error {
		color := byte(rand.Intn(120))
		return dev.Spawn(func(ctx context.Context) error {
			return sweep(ctx, dev, lights, color, *step)
		})
	}, contracts.NewFilter(contracts.Code(launch.Released), contracts.Input(button)))
	if err != nil {
		log.Fatal("Failed to register handler", log.Field().Error("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := board.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Board stopped", log.Field().Error("error", err))
	}
}

// sweep sets every light to color, one after the other.
func sweep(ctx context.Context, dev contracts.Device, lights []byte, color byte, step time.Duration) error {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for _, light := range lights {
		if err := dev.SetColor(color, light); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
