package elevinput

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnel3/elevator-challenge/internal/logger"
)

var Log = logger.GetLogger()

const (
	PROMPT_FROM_FLOOR = "Enter the floor number where the elevator is called from: "
	PROMPT_TO_FLOOR   = "Enter the floor number where the elevator should go to: "
	PROMPT_PASSENGERS = "Enter the number of passengers on the elevator: "
)

// Reader prompts for the three numbers of a request, one per line.
// Range checks are left to the dispatcher.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadRequest returns io.EOF when the input ends before a full request was read.
func (r *Reader) ReadRequest() (fromFloor, toFloor, passengers int, err error) {
	if fromFloor, err = r.readInt(PROMPT_FROM_FLOOR, "Please enter a valid floor number"); err != nil {
		return
	}
	if toFloor, err = r.readInt(PROMPT_TO_FLOOR, "Please enter a valid floor number"); err != nil {
		return
	}
	passengers, err = r.readInt(PROMPT_PASSENGERS, "Please enter a valid number of passengers")
	return
}

func (r *Reader) readInt(prompt string, retry string) (int, error) {
	for {
		fmt.Fprint(r.out, prompt)
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return 0, fmt.Errorf("error reading input: %w", err)
			}
			return 0, io.EOF
		}

		line := strings.TrimSpace(r.scanner.Text())
		value, err := strconv.Atoi(line)
		if err == nil {
			return value, nil
		}
		Log.Debug().Msgf("Rejected input %q: %v", line, err)
		fmt.Fprintln(r.out, retry)
	}
}
