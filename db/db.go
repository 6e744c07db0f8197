// Package db keeps scores in a DynamoDB table keyed by score id.
package db

import (
	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/staffpad/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// New connects to DynamoDB. An empty endpoint uses the regional AWS one.
func New(endpoint, region, table string) (*Store, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("creating DynamoDB session"))
	}
	return &Store{client: dynamodb.New(sess), table: table}, nil
}

type item struct {
	PK     string        `dynamodbav:"PK"`
	Title  string        `dynamodbav:"Title,omitempty"`
	Staffs []model.Staff `dynamodbav:"Staffs"`
}

func toItem(score model.Score) (map[string]*dynamodb.AttributeValue, error) {
	return dynamodbattribute.MarshalMap(item{PK: score.ID, Title: score.Title, Staffs: score.Staffs})
}

func fromItem(av map[string]*dynamodb.AttributeValue) (model.Score, error) {
	var it item
	if err := dynamodbattribute.UnmarshalMap(av, &it); err != nil {
		return model.Score{}, err
	}
	return model.Score{ID: it.PK, Title: it.Title, Staffs: it.Staffs}, nil
}

func (s *Store) Save(score model.Score) error {
	av, err := toItem(score)
	if err != nil {
		return fault.Wrap(err, fmsg.With("encoding score item"))
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fault.Wrap(err, fmsg.With("putting score item"))
	}
	return nil
}

func (s *Store) Load(id string) (model.Score, error) {
	res, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return model.Score{}, fault.Wrap(err, fmsg.With("getting score item"))
	}
	if len(res.Item) == 0 {
		return model.Score{}, fault.Wrap(fault.New("score not found"),
			ftag.With(ftag.NotFound), fmsg.WithDesc("no item for "+id, "There is no score with id "+id+"."))
	}
	score, err := fromItem(res.Item)
	if err != nil {
		return model.Score{}, fault.Wrap(err, fmsg.With("decoding score item"))
	}
	return score, nil
}
