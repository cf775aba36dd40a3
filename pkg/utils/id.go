package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateRunID generates a run ID for one scenario execution
func GenerateRunID(scenarioID int) string {
	return fmt.Sprintf("scenario-%d-%s", scenarioID, uuid.NewString())
}

// BrokerName returns the conventional broker name for a campus
func BrokerName(campus string) string {
	return "Broker_" + campus
}
