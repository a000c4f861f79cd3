package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"clientdesk/internal/domain"
)

// dynamoItem is the single item shape stored per key.
type dynamoItem struct {
	PK        string `dynamodbav:"PK"`
	Value     []byte `dynamodbav:"value"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

// DynamoStore persists values as items keyed by PK in a DynamoDB table.
type DynamoStore struct {
	table   string
	cli     *dynamodb.Client
	timeout time.Duration
}

// NewDynamoStore returns a DynamoStore for table, creating the table when it
// does not exist yet.
func NewDynamoStore(ctx context.Context, cli *dynamodb.Client, table string, timeout time.Duration) (*DynamoStore, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &DynamoStore{table: table, cli: cli, timeout: timeout}
	if err := s.createTableIfNotExists(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DynamoStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            pk(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, err
	}
	if out.Item == nil {
		return nil, false, nil
	}
	var it dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, false, fmt.Errorf("dynamodb item %q: %w", key, err)
	}
	return it.Value, true, nil
}

func (s *DynamoStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	item, err := attributevalue.MarshalMap(dynamoItem{PK: key, Value: value, UpdatedAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}

func (s *DynamoStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       pk(key),
	})
	return err
}

// createTableIfNotExists creates the table; an existing table is not an error.
func (s *DynamoStore) createTableIfNotExists(ctx context.Context) error {
	_, err := s.cli.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: ddbTypes.KeyTypeHash},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var inUse *ddbTypes.ResourceInUseException
	if errors.As(err, &inUse) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	// A fresh table is not usable until it turns ACTIVE.
	return dynamodb.NewTableExistsWaiter(s.cli).Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	}, 30*time.Second)
}

func pk(key string) map[string]ddbTypes.AttributeValue {
	return map[string]ddbTypes.AttributeValue{
		"PK": &ddbTypes.AttributeValueMemberS{Value: key},
	}
}

var _ domain.KeyValueStore = (*DynamoStore)(nil)
