package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/gnel3/elevator-challenge/internal/elevconfig"
	"github.com/gnel3/elevator-challenge/internal/elevdispatch"
	"github.com/gnel3/elevator-challenge/internal/elevdisplay"
	"github.com/gnel3/elevator-challenge/internal/elevinput"
	"github.com/gnel3/elevator-challenge/internal/elevmetadata"
	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/gnel3/elevator-challenge/internal/elevutils"
	"github.com/gnel3/elevator-challenge/internal/logger"
	"github.com/rs/zerolog"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

type enteredRequest struct {
	fromFloor, toFloor, passengers int
	err                            error
}

func main() {
	cmdArgs := elevutils.ProcessCmdArgs()

	settings, err := elevconfig.Load(cmdArgs.ConfigPath, cmdArgs.EnvPath)
	if err != nil {
		Logger.Fatal().Msgf("Error loading settings: %v", err)
	}
	level := settings.LogLevel
	if cmdArgs.LogLevel != "" {
		level = cmdArgs.LogLevel
	}
	Logger = logger.GetLoggerConfigured(logger.ParseLevel(level))

	// Starting Programme
	Logger.Info().Msg("Starting Elevator Simulator")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher, err := elevdispatch.NewDispatcher(settings)
	if err != nil {
		Logger.Fatal().Msgf("Error creating dispatcher: %v", err)
	}
	metadata := elevmetadata.New(elevutils.GetGitHash(), dispatcher.Identifier, settings)
	Logger.Info().Msgf("Building: %v", metadata.String())

	display := elevdisplay.New(os.Stdout)
	input := elevinput.NewReader(os.Stdin, os.Stdout)

	display.Clear()
	display.ShowMessage("Welcome to the Elevator Simulation System")
	display.ShowMessage("Building has %d floors and %d elevators", settings.NumberOfFloors, settings.NumberOfElevators)
	display.ShowMessage("Press Ctrl+C to exit\n")
	display.ShowStatus(dispatcher.GetElevatorSnapshot())

	for ctx.Err() == nil {
		request, ok := readRequest(ctx, input)
		if !ok {
			break
		}

		result := runRequest(ctx, dispatcher, display, settings.RefreshInterval, request)
		if result.IsFailure() {
			display.ShowResult(result)
			continue
		}

		display.Clear()
		display.ShowStatus(dispatcher.GetElevatorSnapshot())
		display.ShowResult(result)
		display.ShowMessage("Press 'Q' to quit or any other key to make another request.")
		if quitRequested() {
			break
		}
	}

	Logger.Info().Msg("Stopping Elevator Simulator")
}

// readRequest gives up when ctx is cancelled while waiting for a line.
func readRequest(ctx context.Context, input *elevinput.Reader) (enteredRequest, bool) {
	entered := make(chan enteredRequest, 1)
	go func() {
		fromFloor, toFloor, passengers, err := input.ReadRequest()
		entered <- enteredRequest{fromFloor, toFloor, passengers, err}
	}()

	select {
	case <-ctx.Done():
		return enteredRequest{}, false
	case request := <-entered:
		if errors.Is(request.err, io.EOF) {
			return request, false
		}
		if request.err != nil {
			Logger.Error().Msgf("Error reading request: %v", request.err)
			return request, false
		}
		return request, true
	}
}

// runRequest calls an elevator and redraws the building every interval
// until the call returns.
func runRequest(ctx context.Context, dispatcher *elevdispatch.Dispatcher, display *elevdisplay.Display, interval time.Duration, request enteredRequest) elevresult.Result {
	done := make(chan elevresult.Result, 1)
	go func() {
		done <- dispatcher.CallElevator(ctx, request.fromFloor, request.toFloor, request.passengers)
	}()

	if interval <= 0 {
		interval = elevconfig.Default().RefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case result := <-done:
			return result
		case <-ticker.C:
			if err := dispatcher.RefreshAll(ctx); err != nil {
				Logger.Warn().Msgf("%v", err)
			}
			display.Clear()
			display.ShowStatus(dispatcher.GetElevatorSnapshot())
		}
	}
}

func quitRequested() bool {
	char, key, err := keyboard.GetSingleKey()
	if err != nil {
		Logger.Error().Msgf("Error when getting key: %v", err)
		return false
	}
	return char == 'Q' || char == 'q' || key == keyboard.KeyCtrlC || key == keyboard.KeyEsc
}
