package cmd

import (
	"fmt"

	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/staffpad/constants"
	"github.com/jsphweid/staffpad/db"
	"github.com/jsphweid/staffpad/file"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/session"
)

var scoreID string

// openScore loads the score from DynamoDB when an endpoint is configured and
// from the score file otherwise, and returns the matching persister.
func openScore() (model.Score, session.Persister, error) {
	if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
		store, err := db.New(endpoint, constants.GetAWSRegion(), constants.GetDynamoTable())
		if err != nil {
			return model.Score{}, nil, err
		}
		if scoreID == "" {
			return model.Score{}, nil, fmt.Errorf("--id is required when DYNAMO_ENDPOINT is set")
		}
		score, err := store.Load(scoreID)
		if ftag.Get(err) == ftag.NotFound {
			fmt.Printf("Starting new score %s\n", scoreID)
			return model.Score{ID: scoreID}, store, nil
		}
		return score, store, err
	}

	score, err := file.LoadOrNew(scorePath)
	return score, file.Store{Path: scorePath}, err
}

func mustOpenScore() (model.Score, session.Persister) {
	score, p, err := openScore()
	if err != nil {
		panic("Could not open score: " + err.Error())
	}
	return score, p
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scoreID, "id", "", "score id in DynamoDB")
}
