package constants

import (
	"os"
	"time"
)

func GetScorePath() string {
	path := os.Getenv("SCORE_PATH")
	if path != "" {
		return path
	}
	return "./score.yaml"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetDynamoEndpoint is empty when scores live in files.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	table := os.Getenv("DYNAMO_TABLE")
	if table != "" {
		return table
	}
	return "staffpad-scores"
}

func GetAWSRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}

const GapUnit = 10

const StaffSpace = 10

const MaxUndo = 100

const SaveDelay = 500 * time.Millisecond

const PreviewBPM = 120

const TicksPerQuarter = 960
