package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/serverless/amazon"
	"github.com/segmentio/ksuid"
)

// ErrIDCollision is returned when a generated id already exists in a table.
var ErrIDCollision = errors.New("record id already exists")

// DynamoStore writes records into one DynamoDB table per kind.
type DynamoStore struct {
	client  dynamodbiface.DynamoDBAPI
	tables  Tables
	project string
	now     func() time.Time
}

// NewDynamoStore returns a store using the passed client.
func NewDynamoStore(client dynamodbiface.DynamoDBAPI, tables Tables, project string) *DynamoStore {
	return &DynamoStore{
		client:  client,
		tables:  tables,
		project: project,
		now:     time.Now,
	}
}

// Create validates and writes the record, returning its new id.
func (s *DynamoStore) Create(ctx context.Context, request Request) (Created, error) {
	item, err := s.item(request)
	if err != nil {
		return Created{}, err
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tables.TableName(request.Kind)),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil && amazon.IsErrorCode(err, dynamodb.ErrCodeConditionalCheckFailedException) {
		return Created{}, ErrIDCollision
	} else if err != nil {
		return Created{}, err
	}

	return Created{
		ID:    aws.StringValue(item["PK"].S),
		Token: request.Token,
	}, nil
}

func (s *DynamoStore) item(request Request) (map[string]*dynamodb.AttributeValue, error) {
	if request.Record == nil {
		return nil, fmt.Errorf("%s: missing record", request.Kind)
	}
	if request.Record.Kind() != request.Kind {
		return nil, fmt.Errorf("%s: record is a %s", request.Kind, request.Record.Kind())
	}
	if err := serverless.GetValidator().Struct(request.Record); err != nil {
		return nil, err
	}
	if err := request.Record.Validate(); err != nil {
		return nil, err
	}

	item, err := dynamodbattribute.MarshalMap(request.Record)
	if err != nil {
		return nil, err
	}

	pk := PrimaryKey{
		HashKey: NewID(request.Kind),
		SortKey: request.Kind.SortKey(),
	}
	for key, value := range pk.Dynamo() {
		item[key] = value
	}

	item["CreatedAt"] = DynamoTime(s.now())
	if s.project != "" {
		item["Project"] = &dynamodb.AttributeValue{S: aws.String(s.project)}
	}
	if request.Token != "" {
		item["RequestToken"] = &dynamodb.AttributeValue{S: aws.String(request.Token)}
	}
	if len(request.Permissions) > 0 {
		item["Permissions"] = &dynamodb.AttributeValue{SS: aws.StringSlice(request.Permissions)}
	}

	return item, nil
}

// NewID returns a new unique id for a record of the passed kind.
func NewID(kind Kind) string {
	return fmt.Sprintf("%s:%s", kind.IDPrefix(), ksuid.New().String())
}

// DynamoTime returns the DynamoDB AttributeValue for a time
func DynamoTime(t time.Time) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(fmt.Sprintf("%d", t.Unix()))}
}

// TimeFromDynamo parses and returns the time from a dynamodb attribute value
func TimeFromDynamo(a *dynamodb.AttributeValue) time.Time {
	if a == nil || a.N == nil {
		return time.Time{}
	}

	value, err := strconv.ParseInt(aws.StringValue(a.N), 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(value, 0)
}
