package elevdisplay

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/gnel3/elevator-challenge/internal/elevunit"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CLEAR_SCREEN = "\033[H\033[2J"

// Display writes simulator output. Methods are safe to call from the
// refresh loop and the request goroutine at the same time.
type Display struct {
	mu      sync.Mutex
	out     io.Writer
	printer *message.Printer
}

func New(out io.Writer) *Display {
	return &Display{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprint(d.out, CLEAR_SCREEN)
}

func (d *Display) ShowStatus(snapshots []elevunit.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.printer.Fprintf(d.out, "Elevator status (%d elevators):\n", len(snapshots))
	for _, snapshot := range snapshots {
		d.printer.Fprintf(d.out, "  #%d  floor %3d  %-9v %-4v  %d/%d passengers  next: %s\n",
			snapshot.ID,
			snapshot.CurrentFloor,
			snapshot.Status,
			snapshot.Direction,
			snapshot.CurrentPassengers,
			snapshot.MaxPassengers,
			formatFloors(snapshot.DestinationFloors),
		)
	}
}

func (d *Display) ShowResult(result elevresult.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if result.IsSuccess() {
		d.printer.Fprintf(d.out, "Request %v completed.\n", result.RequestID)
		return
	}
	d.printer.Fprintf(d.out, "Error (%s): %s\n", result.Err.Code, result.Err.Message)
}

func (d *Display) ShowMessage(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.printer.Fprintf(d.out, format+"\n", args...)
}

func formatFloors(floors []int) string {
	if len(floors) == 0 {
		return "-"
	}
	parts := make([]string, len(floors))
	for i, floor := range floors {
		parts[i] = fmt.Sprint(floor)
	}
	return strings.Join(parts, ", ")
}
