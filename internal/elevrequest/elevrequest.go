package elevrequest

import (
	"fmt"

	"github.com/gnel3/elevator-challenge/internal/elevconsts"
	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/google/uuid"
)

// Request asks for passengers to be carried from one floor to another.
type Request struct {
	ID         uuid.UUID
	FromFloor  int
	ToFloor    int
	Passengers int
}

func NewRequest(fromFloor, toFloor, passengers int) Request {
	return Request{
		ID:         uuid.New(),
		FromFloor:  fromFloor,
		ToFloor:    toFloor,
		Passengers: passengers,
	}
}

func (r Request) String() string {
	return fmt.Sprintf("%d->%d x%d", r.FromFloor, r.ToFloor, r.Passengers)
}

// Validate checks floors before passengers, so a request that is wrong on
// both counts reports InvalidFloor.
func (r Request) Validate(numberOfFloors int) error {
	if !floorInRange(r.FromFloor, numberOfFloors) || !floorInRange(r.ToFloor, numberOfFloors) {
		return elevresult.ErrInvalidFloor.WithMessage("Floor numbers must be between %d and %d", elevconsts.GroundFloor, numberOfFloors)
	}
	if r.Passengers < 1 {
		return elevresult.ErrInvalidPassengerCount.WithMessage("At least one passenger is required, got %d", r.Passengers)
	}
	return nil
}

func floorInRange(floor, numberOfFloors int) bool {
	return floor >= elevconsts.GroundFloor && floor <= numberOfFloors
}

// SubRequest is the share of a Request carried by a single elevator.
type SubRequest struct {
	RequestID  uuid.UUID
	Index      int
	FromFloor  int
	ToFloor    int
	Passengers int
}

// Split partitions the passengers into chunks of at most maxPassengers.
// Every chunk is full except possibly the last.
func (r Request) Split(maxPassengers int) []SubRequest {
	if maxPassengers < 1 || r.Passengers < 1 {
		return nil
	}

	subRequests := make([]SubRequest, 0, (r.Passengers+maxPassengers-1)/maxPassengers)
	remaining := r.Passengers
	for remaining > 0 {
		chunk := min(remaining, maxPassengers)
		subRequests = append(subRequests, SubRequest{
			RequestID:  r.ID,
			Index:      len(subRequests),
			FromFloor:  r.FromFloor,
			ToFloor:    r.ToFloor,
			Passengers: chunk,
		})
		remaining -= chunk
	}
	return subRequests
}

// Waves groups the chunks of a request into batches of at most
// numberOfElevators, one chunk per elevator slot.
func (r Request) Waves(maxPassengers, numberOfElevators int) [][]SubRequest {
	subRequests := r.Split(maxPassengers)
	if numberOfElevators < 1 || len(subRequests) == 0 {
		return nil
	}

	var waves [][]SubRequest
	for start := 0; start < len(subRequests); start += numberOfElevators {
		end := min(start+numberOfElevators, len(subRequests))
		waves = append(waves, subRequests[start:end])
	}
	return waves
}
