package elevunit

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnel3/elevator-challenge/internal/elevconsts"
	"github.com/gnel3/elevator-challenge/internal/logger"
)

var Log = logger.GetLogger()

// Movable is implemented by cars that keep a destination queue and travel it.
type Movable interface {
	AddDestination(floor int)
	Advance(ctx context.Context, simulateDelay bool) error
}

// CapacityChecked is implemented by cars that track occupancy.
type CapacityChecked interface {
	CanAddPassengers(count int) bool
	AddPassengers(count int) error
	RemovePassengers(count int) error
}

// Unit is what the dispatcher stores. Every variant is both movable and
// capacity checked; PassengerElevator is the only one so far.
type Unit interface {
	Movable
	CapacityChecked

	ID() int
	CurrentFloor() int
	Status() elevconsts.Status
	Snapshot() Snapshot
}

type Snapshot struct {
	ID                int                  `json:"id"`
	CurrentFloor      int                  `json:"current_floor"`
	Direction         elevconsts.Direction `json:"direction"`
	Status            elevconsts.Status    `json:"status"`
	CurrentPassengers int                  `json:"current_passengers"`
	MaxPassengers     int                  `json:"max_passengers"`
	DestinationFloors []int                `json:"destination_floors"`
}

func (s Snapshot) String() string {
	floors := make([]string, len(s.DestinationFloors))
	for i, floor := range s.DestinationFloors {
		floors[i] = fmt.Sprint(floor)
	}
	return fmt.Sprintf("Elevator #%d floor=%d status=%s dirn=%s passengers=%d/%d destinations=[%s]",
		s.ID, s.CurrentFloor, s.Status, s.Direction, s.CurrentPassengers, s.MaxPassengers, strings.Join(floors, ", "))
}
