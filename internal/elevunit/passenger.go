package elevunit

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gnel3/elevator-challenge/internal/elevconsts"
	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/tiendc/go-deepcopy"
)

const DEFAULT_FLOOR_TRAVEL_TIME = time.Second

type PassengerElevator struct {
	mu    sync.Mutex
	state Snapshot

	floorTravelTime time.Duration
	inTransit       bool //set while a popped destination has not been reached
}

func NewPassengerElevator(id int, maxPassengers int, floorTravelTime time.Duration) *PassengerElevator {
	if floorTravelTime < 0 {
		floorTravelTime = DEFAULT_FLOOR_TRAVEL_TIME
	}
	return &PassengerElevator{
		state: Snapshot{
			ID:                id,
			CurrentFloor:      elevconsts.GroundFloor,
			Direction:         elevconsts.Idle,
			Status:            elevconsts.Available,
			MaxPassengers:     maxPassengers,
			DestinationFloors: []int{},
		},
		floorTravelTime: floorTravelTime,
	}
}

func (e *PassengerElevator) ID() int {
	return e.state.ID
}

func (e *PassengerElevator) CurrentFloor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentFloor
}

func (e *PassengerElevator) Status() elevconsts.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Status
}

func (e *PassengerElevator) Direction() elevconsts.Direction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Direction
}

func (e *PassengerElevator) CurrentPassengers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentPassengers
}

func (e *PassengerElevator) MaxPassengers() int {
	return e.state.MaxPassengers
}

func (e *PassengerElevator) DestinationFloors() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.state.DestinationFloors)
}

// Snapshot returns a copy that shares no memory with the elevator.
func (e *PassengerElevator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var snapshot Snapshot
	if err := deepcopy.Copy(&snapshot, &e.state); err != nil {
		Log.Error().Msgf("Error copying state of elevator %d: %v", e.state.ID, err)
		snapshot = e.state
		snapshot.DestinationFloors = slices.Clone(e.state.DestinationFloors)
	}
	return snapshot
}

// AddDestination keeps the queue sorted ascending and free of duplicates.
func (e *PassengerElevator) AddDestination(floor int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	index, found := slices.BinarySearch(e.state.DestinationFloors, floor)
	if found {
		return
	}
	e.state.DestinationFloors = slices.Insert(e.state.DestinationFloors, index, floor)
}

func (e *PassengerElevator) CanAddPassengers(count int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canAddPassengers(count)
}

func (e *PassengerElevator) canAddPassengers(count int) bool {
	return e.state.CurrentPassengers+count <= e.state.MaxPassengers
}

func (e *PassengerElevator) AddPassengers(count int) error {
	if count < 0 {
		return elevresult.ErrInvalidPassengerCount.WithMessage("Cannot board %d passengers", count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canAddPassengers(count) {
		return elevresult.ErrCapacityExceeded.WithMessage("Elevator %d capacity exceeded: %d aboard, %d boarding, max %d",
			e.state.ID, e.state.CurrentPassengers, count, e.state.MaxPassengers)
	}
	e.state.CurrentPassengers += count
	return nil
}

func (e *PassengerElevator) RemovePassengers(count int) error {
	if count < 0 {
		return elevresult.ErrInvalidPassengerCount.WithMessage("Cannot disembark %d passengers", count)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentPassengers-count < 0 {
		return elevresult.ErrInvalidRemoval.WithMessage("Elevator %d cannot remove %d passengers, only %d aboard",
			e.state.ID, count, e.state.CurrentPassengers)
	}
	e.state.CurrentPassengers -= count
	return nil
}

// Advance travels to the nearest queued destination. With simulateDelay the
// trip takes floorTravelTime per floor and can be cancelled through ctx, in
// which case the car stays at its last confirmed floor and its queue is
// dropped. Calling Advance while a trip is in progress or with an empty
// queue does nothing.
func (e *PassengerElevator) Advance(ctx context.Context, simulateDelay bool) error {
	e.mu.Lock()
	if e.inTransit || len(e.state.DestinationFloors) == 0 {
		e.mu.Unlock()
		return nil
	}

	if err := ctx.Err(); err != nil {
		e.abortMoveLocked()
		floor := e.state.CurrentFloor
		e.mu.Unlock()
		Log.Warn().Msgf("Elevator %d move cancelled before start, staying at %d", e.state.ID, floor)
		return elevresult.ErrOperationCancelled.WithMessage("Elevator %d move cancelled before start: %v", e.state.ID, err)
	}

	from := e.state.CurrentFloor
	target := e.state.DestinationFloors[0]
	e.state.DestinationFloors = e.state.DestinationFloors[1:]

	// already there: no trip, status only settles when the queue is drained
	if target == from {
		if len(e.state.DestinationFloors) == 0 {
			e.state.Status = elevconsts.Available
			e.state.Direction = elevconsts.Idle
		}
		e.mu.Unlock()
		Log.Debug().Msgf("Elevator %d already at %d", e.state.ID, target)
		return nil
	}

	e.state.Direction = elevconsts.DirectionTo(from, target)
	e.state.Status = elevconsts.Moving
	e.inTransit = true
	e.mu.Unlock()

	Log.Debug().Msgf("Elevator %d moving %s from %d to %d", e.state.ID, elevconsts.DirectionTo(from, target), from, target)

	distance := abs(target - from)
	if simulateDelay && distance > 0 && e.floorTravelTime > 0 {
		timer := time.NewTimer(time.Duration(distance) * e.floorTravelTime)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			e.abortMove()
			Log.Warn().Msgf("Elevator %d move to %d cancelled, staying at %d", e.state.ID, target, from)
			return elevresult.ErrOperationCancelled.WithMessage("Elevator %d move to floor %d cancelled: %v", e.state.ID, target, ctx.Err())
		case <-timer.C:
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.CurrentFloor = target
	e.inTransit = false
	if len(e.state.DestinationFloors) == 0 {
		e.state.Status = elevconsts.Available
		e.state.Direction = elevconsts.Idle
	}
	Log.Debug().Msgf("Elevator %d arrived at %d", e.state.ID, target)
	return nil
}

func (e *PassengerElevator) abortMove() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortMoveLocked()
}

func (e *PassengerElevator) abortMoveLocked() {
	e.state.Status = elevconsts.Available
	e.state.Direction = elevconsts.Idle
	e.state.DestinationFloors = []int{}
	e.inTransit = false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
