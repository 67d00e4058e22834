// Package store wraps the DynamoDB primitives the data layer consumes.
// The wrapper stays deliberately thin: errors propagate uncategorized, no
// retries, and result pagination is not followed — a truncated response
// yields only the first page.
package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is one store row in DynamoDB attribute-value form.
type Item = map[string]types.AttributeValue

// QueryRequest describes one partition-scoped range query. The sort-key
// condition is applied only when SortAttr is set, as an inclusive BETWEEN
// over [SortFrom, SortTo].
type QueryRequest struct {
	Table         string
	PartitionAttr string
	PartitionKey  string
	SortAttr      string
	SortFrom      string
	SortTo        string
}

// Gateway is the capability the data layer needs from the store.
type Gateway interface {
	PutItem(ctx context.Context, table string, item Item) error
	Query(ctx context.Context, req QueryRequest) ([]Item, error)
	Scan(ctx context.Context, table string) ([]Item, error)
	DeleteItem(ctx context.Context, table string, key Item) error
}

// Dynamo implements Gateway on the AWS SDK DynamoDB client.
type Dynamo struct {
	client *dynamodb.Client
}

func NewDynamo(client *dynamodb.Client) *Dynamo {
	return &Dynamo{client: client}
}

func (d *Dynamo) PutItem(ctx context.Context, table string, item Item) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo put %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Query(ctx context.Context, req QueryRequest) ([]Item, error) {
	expr := "#pk = :pk"
	names := map[string]string{"#pk": req.PartitionAttr}
	values := Item{":pk": &types.AttributeValueMemberS{Value: req.PartitionKey}}
	if req.SortAttr != "" {
		expr += " AND #sk BETWEEN :skFrom AND :skTo"
		names["#sk"] = req.SortAttr
		values[":skFrom"] = &types.AttributeValueMemberS{Value: req.SortFrom}
		values[":skTo"] = &types.AttributeValueMemberS{Value: req.SortTo}
	}
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(req.Table),
		KeyConditionExpression:    aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo query %s: %w", req.Table, err)
	}
	return out.Items, nil
}

func (d *Dynamo) Scan(ctx context.Context, table string) ([]Item, error) {
	out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo scan %s: %w", table, err)
	}
	return out.Items, nil
}

func (d *Dynamo) DeleteItem(ctx context.Context, table string, key Item) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("dynamo delete %s: %w", table, err)
	}
	return nil
}
