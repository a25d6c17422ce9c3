package elevdispatch

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gnel3/elevator-challenge/internal/elevconfig"
	"github.com/gnel3/elevator-challenge/internal/elevconsts"
	"github.com/gnel3/elevator-challenge/internal/elevrequest"
	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/gnel3/elevator-challenge/internal/elevunit"
	"github.com/gnel3/elevator-challenge/internal/logger"
	"github.com/xyproto/randomstring"
	"golang.org/x/sync/errgroup"
)

var Log = logger.GetLogger()

const (
	IDENTIFIER_DEFAULT_LEN  = 10
	SELECTION_POLL_INTERVAL = 100 * time.Millisecond
)

// Dispatcher owns the elevators of one building. Selection and reservation
// of a car happen under mu, so concurrent sub-requests never share a car.
type Dispatcher struct {
	Identifier string

	settings elevconfig.Settings
	units    []elevunit.Unit

	mu       sync.Mutex
	reserved map[int]bool
	released chan struct{} //closed and replaced whenever a car is released
}

func NewDispatcher(settings elevconfig.Settings) (*Dispatcher, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	units := make([]elevunit.Unit, 0, settings.NumberOfElevators)
	for id := 1; id <= settings.NumberOfElevators; id++ {
		units = append(units, elevunit.NewPassengerElevator(id, settings.MaxPassengers, settings.FloorTravelTime))
	}
	return NewDispatcherWithUnits(settings, units)
}

// NewDispatcherWithUnits uses the given cars in order instead of building
// passenger elevators. NumberOfElevators is taken from len(units).
func NewDispatcherWithUnits(settings elevconfig.Settings, units []elevunit.Unit) (*Dispatcher, error) {
	if len(units) == 0 {
		return nil, elevresult.ErrInvalidSettings.WithMessage("At least one elevator is required")
	}
	settings.NumberOfElevators = len(units)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	identifier := settings.Identifier
	if identifier == "" {
		identifier = randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN)
		Log.Warn().Msgf("No dispatcher identifier provided, generated random identifier \"%v\"", identifier)
	}

	return &Dispatcher{
		Identifier: identifier,
		settings:   settings,
		units:      slices.Clone(units),
		reserved:   make(map[int]bool),
		released:   make(chan struct{}),
	}, nil
}

func (d *Dispatcher) Settings() elevconfig.Settings {
	return d.settings
}

func (d *Dispatcher) Units() []elevunit.Unit {
	return slices.Clone(d.units)
}

// CallElevator carries passengers from one floor to another and blocks
// until every car involved has dropped them off.
func (d *Dispatcher) CallElevator(ctx context.Context, fromFloor, toFloor, passengers int) elevresult.Result {
	return d.Submit(ctx, elevrequest.NewRequest(fromFloor, toFloor, passengers))
}

// Submit validates and serves a request. Requests larger than one car are
// split into waves of at most one chunk per elevator; a wave runs
// concurrently and the next wave starts only after it succeeded.
func (d *Dispatcher) Submit(ctx context.Context, request elevrequest.Request) (result elevresult.Result) {
	defer func() {
		if r := recover(); r != nil {
			Log.Error().Str("request", request.ID.String()).Msgf("Recovered from panic: %v", r)
			result = elevresult.Failure(request.ID, elevresult.ErrInternal.WithMessage("Internal elevator error: %v", r))
		}
	}()

	if err := request.Validate(d.settings.NumberOfFloors); err != nil {
		Log.Warn().Str("request", request.ID.String()).Msgf("Rejected request %v: %v", request, err)
		return elevresult.Failure(request.ID, err)
	}

	waves := request.Waves(d.settings.MaxPassengers, len(d.units))
	Log.Info().Str("request", request.ID.String()).Msgf("Accepted request %v in %d wave(s)", request, len(waves))

	for index, wave := range waves {
		Log.Debug().Str("request", request.ID.String()).Msgf("Starting wave %d with %d sub-request(s)", index, len(wave))
		if err := d.runWave(ctx, wave); err != nil {
			Log.Error().Str("request", request.ID.String()).Msgf("Wave %d failed: %v", index, err)
			return elevresult.Failure(request.ID, err)
		}
	}

	Log.Info().Str("request", request.ID.String()).Msgf("Completed request %v", request)
	return elevresult.Success(request.ID)
}

func (d *Dispatcher) runWave(ctx context.Context, wave []elevrequest.SubRequest) error {
	var group errgroup.Group
	for _, sub := range wave {
		sub := sub
		group.Go(func() error {
			return d.serveSafely(ctx, sub)
		})
	}
	return group.Wait()
}

func (d *Dispatcher) serveSafely(ctx context.Context, sub elevrequest.SubRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = elevresult.ErrInternal.WithMessage("Internal elevator error in sub-request %d: %v", sub.Index, r)
		}
	}()
	return d.serve(ctx, sub)
}

// serve runs one sub-request: reserve a car, fetch it to the pickup floor,
// board, travel, disembark. Passengers that boarded are always disembarked,
// at the last confirmed floor if the trip failed.
func (d *Dispatcher) serve(ctx context.Context, sub elevrequest.SubRequest) error {
	unit, err := d.reserveNearestElevator(ctx, sub.FromFloor)
	if err != nil {
		return err
	}
	defer d.release(unit)

	log := Log.With().Str("request", sub.RequestID.String()).Int("chunk", sub.Index).Int("elevator", unit.ID()).Logger()
	log.Info().Msgf("Assigned %d passenger(s) from floor %d to floor %d", sub.Passengers, sub.FromFloor, sub.ToFloor)

	if !unit.CanAddPassengers(sub.Passengers) {
		return elevresult.ErrCapacityExceeded.WithMessage("Too many passengers for elevator %d", unit.ID())
	}

	unit.AddDestination(sub.FromFloor)
	if err := unit.Advance(ctx, d.settings.SimulateMovement); err != nil {
		return err
	}

	if err := unit.AddPassengers(sub.Passengers); err != nil {
		return err
	}
	log.Debug().Msgf("Boarded %d passenger(s) at floor %d", sub.Passengers, unit.CurrentFloor())

	unit.AddDestination(sub.ToFloor)
	if err := unit.Advance(ctx, d.settings.SimulateMovement); err != nil {
		if removeErr := unit.RemovePassengers(sub.Passengers); removeErr != nil {
			log.Error().Msgf("Error disembarking after failed trip: %v", removeErr)
		}
		log.Warn().Msgf("Trip failed, disembarked at floor %d: %v", unit.CurrentFloor(), err)
		return err
	}

	if err := unit.RemovePassengers(sub.Passengers); err != nil {
		return err
	}
	log.Info().Msgf("Dropped off %d passenger(s) at floor %d", sub.Passengers, unit.CurrentFloor())
	return nil
}

// GetNearestElevator returns the available car closest to floor, the
// first one in order on ties. It neither waits nor reserves.
func (d *Dispatcher) GetNearestElevator(floor int) (elevunit.Unit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nearestAvailableLocked(floor)
}

func (d *Dispatcher) nearestAvailableLocked(floor int) (elevunit.Unit, error) {
	var nearest elevunit.Unit
	bestDistance := 0
	for _, unit := range d.units {
		if d.reserved[unit.ID()] || unit.Status() != elevconsts.Available {
			continue
		}
		distance := abs(unit.CurrentFloor() - floor)
		if nearest == nil || distance < bestDistance {
			nearest = unit
			bestDistance = distance
		}
	}
	if nearest == nil {
		return nil, elevresult.ErrNoAvailableElevator.WithMessage("No elevator is available to serve floor %d", floor)
	}
	return nearest, nil
}

// reserveNearestElevator selects and reserves a car in one step. When none
// is free it waits for a release, up to SelectionTimeout.
func (d *Dispatcher) reserveNearestElevator(ctx context.Context, floor int) (elevunit.Unit, error) {
	var timeout <-chan time.Time
	if d.settings.SelectionTimeout > 0 {
		timer := time.NewTimer(d.settings.SelectionTimeout)
		defer timer.Stop()
		timeout = timer.C
	}
	ticker := time.NewTicker(SELECTION_POLL_INTERVAL)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, elevresult.ErrOperationCancelled.WithMessage("Cancelled before an elevator was reserved: %v", err)
		}

		d.mu.Lock()
		unit, err := d.nearestAvailableLocked(floor)
		if err == nil {
			d.reserved[unit.ID()] = true
			d.mu.Unlock()
			return unit, nil
		}
		released := d.released
		d.mu.Unlock()

		if timeout == nil {
			return nil, err
		}

		select {
		case <-released:
		case <-ticker.C:
		case <-ctx.Done():
			return nil, elevresult.ErrOperationCancelled.WithMessage("Cancelled while waiting for an elevator: %v", ctx.Err())
		case <-timeout:
			return nil, elevresult.ErrNoAvailableElevator.WithMessage("No elevator became available within %v", d.settings.SelectionTimeout)
		}
	}
}

func (d *Dispatcher) release(unit elevunit.Unit) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.reserved, unit.ID())
	close(d.released)
	d.released = make(chan struct{})
}

// RefreshAll advances every moving car by one destination, concurrently.
// The caller decides the cadence; the dispatcher owns no timer.
func (d *Dispatcher) RefreshAll(ctx context.Context) error {
	var group errgroup.Group
	for _, unit := range d.units {
		if unit.Status() != elevconsts.Moving {
			continue
		}
		unit := unit
		group.Go(func() error {
			return unit.Advance(ctx, d.settings.SimulateMovement)
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("error refreshing elevators: %w", err)
	}
	return nil
}

// GetElevatorSnapshot returns a copy of every car's state ordered by id.
func (d *Dispatcher) GetElevatorSnapshot() []elevunit.Snapshot {
	snapshots := make([]elevunit.Snapshot, 0, len(d.units))
	for _, unit := range d.units {
		snapshots = append(snapshots, unit.Snapshot())
	}
	slices.SortStableFunc(snapshots, func(a, b elevunit.Snapshot) int {
		return a.ID - b.ID
	})
	return snapshots
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
