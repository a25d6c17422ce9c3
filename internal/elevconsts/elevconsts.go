package elevconsts

const (
	GroundFloor = 1
)

type Direction int

const (
	Down Direction = -1
	Idle Direction = 0
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Idle:
		return "Idle"
	default:
		return "Undefined"
	}
}

// DirectionTo returns the direction of travel from one floor to another.
func DirectionTo(from, to int) Direction {
	switch {
	case to > from:
		return Up
	case to < from:
		return Down
	default:
		return Idle
	}
}

type Status int

const (
	Available Status = iota // 0
	Moving
	Stopped
)

func (s Status) String() string {
	switch s {
	case Available:
		return "Available"
	case Moving:
		return "Moving"
	case Stopped:
		return "Stopped"
	default:
		return "Undefined"
	}
}
