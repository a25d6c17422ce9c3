package elevmetadata

import (
	"testing"

	"github.com/gnel3/elevator-challenge/internal/elevconfig"
)

func TestString(t *testing.T) {
	metadata := ElevMetaData{
		SoftwareVersion:   "smj2acjkvv4h1zkwjz2ocsn2lkfrjmzf9qn4i2m3",
		Identifier:        "uwvvblrtct",
		NumberOfElevators: 3,
		NumberOfFloors:    10,
		MaxPassengers:     10,
		SimulateMovement:  true,
	}

	jsonString := "{\"software_version\":\"smj2acjkvv4h1zkwjz2ocsn2lkfrjmzf9qn4i2m3\",\"identifier\":\"uwvvblrtct\",\"number_of_elevators\":3,\"number_of_floors\":10,\"max_passengers\":10,\"simulate_movement\":true}"

	if metadata.String() != jsonString {
		t.Errorf("String() = %s, expected %s", metadata.String(), jsonString)
	}
}

func TestNew(t *testing.T) {
	settings := elevconfig.Default()
	settings.Identifier = "from-settings"
	settings.NumberOfFloors = 25

	metadata := New("dev", "tower-b", settings)

	if metadata.Identifier != "tower-b" {
		t.Errorf("Identifier = %s, expected tower-b", metadata.Identifier)
	}
	if metadata.SoftwareVersion != "dev" || metadata.NumberOfFloors != 25 || metadata.NumberOfElevators != settings.NumberOfElevators {
		t.Errorf("New() = %+v, expected values from settings", metadata)
	}
}
