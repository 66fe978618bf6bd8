// Command tracedump prints a CBOR protocol trace written with -trace.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/leandrodaf/launchboard/internal/logger"
	"github.com/leandrodaf/launchboard/sdk/trace"
	"github.com/leandrodaf/launchboard/sdk/contracts"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <trace-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.NewZapLogger()

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal("Failed to open trace", log.Field().Error("error", err))
	}
	defer f.Close()

	r := trace.NewReader(f)
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			log.Fatal("Failed to read trace", log.Field().Error("error", err))
		}

		line := fmt.Sprintf("% x", event.Frame)
		if msg, err := contracts.ParseMessage(event.Frame); err == nil {
			line += "  " + msg.String()
		}
		fmt.Printf("%s %-3s %s\n", event.Timestamp.Format(time.RFC3339Nano), event.Direction, line)
	}
}
