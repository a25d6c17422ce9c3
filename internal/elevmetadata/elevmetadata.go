package elevmetadata

import (
	"encoding/json"

	"github.com/gnel3/elevator-challenge/internal/elevconfig"
	"github.com/gnel3/elevator-challenge/internal/logger"
)

var Log = logger.GetLogger()

type ElevMetaData struct {
	SoftwareVersion   string `json:"software_version"`
	Identifier        string `json:"identifier"`
	NumberOfElevators int    `json:"number_of_elevators"`
	NumberOfFloors    int    `json:"number_of_floors"`
	MaxPassengers     int    `json:"max_passengers"`
	SimulateMovement  bool   `json:"simulate_movement"`
}

// New describes a running building. The identifier is passed separately
// since the dispatcher may have generated it.
func New(softwareVersion string, identifier string, settings elevconfig.Settings) ElevMetaData {
	return ElevMetaData{
		SoftwareVersion:   softwareVersion,
		Identifier:        identifier,
		NumberOfElevators: settings.NumberOfElevators,
		NumberOfFloors:    settings.NumberOfFloors,
		MaxPassengers:     settings.MaxPassengers,
		SimulateMovement:  settings.SimulateMovement,
	}
}

func (elevMetaData *ElevMetaData) String() string {
	jsonData, err := json.Marshal(elevMetaData)

	if err != nil {
		Log.Error().Msg("Error Serialising ElevMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
