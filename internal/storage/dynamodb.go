package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	serrors "github.com/chronoworld/showtimes/internal/errors"
	"github.com/chronoworld/showtimes/pkg/types"
)

// DynamoTable implements Table for an Amazon DynamoDB table.
type DynamoTable struct {
	client    dynamodb.ScanAPIClient
	tableName string
	config    DynamoConfig
}

// DynamoConfig holds configuration for DynamoDB access.
type DynamoConfig struct {
	// Region is the AWS region of the table. Empty uses the SDK default chain.
	Region string
	// Endpoint is an optional custom endpoint (DynamoDB Local, LocalStack, etc.).
	Endpoint string
	// ScanAllPages follows LastEvaluatedKey until the table is exhausted.
	// When false only the first scan page is returned.
	ScanAllPages bool
}

// NewDynamoTable creates a DynamoDB-backed table. The client is built once and
// is safe to share across invocations.
func NewDynamoTable(ctx context.Context, tableName string, cfg DynamoConfig) (*DynamoTable, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, serrors.NewStorageError(serrors.CodeClientSetup, "failed to load AWS config", err)
	}

	var ddbOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		ddbOpts = append(ddbOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	client := dynamodb.NewFromConfig(awsCfg, ddbOpts...)

	return NewDynamoTableWithClient(client, tableName, cfg), nil
}

// NewDynamoTableWithClient creates a table around a pre-configured scan client.
func NewDynamoTableWithClient(client dynamodb.ScanAPIClient, tableName string, cfg DynamoConfig) *DynamoTable {
	return &DynamoTable{
		client:    client,
		tableName: tableName,
		config:    cfg,
	}
}

// Name returns the DynamoDB table name.
func (t *DynamoTable) Name() string {
	return t.tableName
}

// Scan reads the table. Without ScanAllPages, items beyond the first page
// (1 MB of data) are not returned.
func (t *DynamoTable) Scan(ctx context.Context) ([]types.Record, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.tableName),
	}

	if !t.config.ScanAllPages {
		out, err := t.client.Scan(ctx, input)
		if err != nil {
			return nil, t.scanError(err)
		}
		return decodeItems(out.Items)
	}

	var records []types.Record
	paginator := dynamodb.NewScanPaginator(t.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, t.scanError(err)
		}
		decoded, err := decodeItems(page.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, decoded...)
	}

	return records, nil
}

func (t *DynamoTable) scanError(err error) error {
	return serrors.NewStorageError(serrors.CodeScanFailed,
		fmt.Sprintf("failed to scan table %s", t.tableName), err).
		WithDetails(map[string]interface{}{"table": t.tableName})
}

// decodeItems converts DynamoDB attribute maps into records.
func decodeItems(items []map[string]ddbtypes.AttributeValue) ([]types.Record, error) {
	var maps []map[string]interface{}
	if err := attributevalue.UnmarshalListOfMaps(items, &maps); err != nil {
		return nil, serrors.NewStorageError(serrors.CodeDecodeFailed, "failed to decode scanned items", err)
	}

	records := make([]types.Record, 0, len(maps))
	for _, m := range maps {
		records = append(records, types.Record(m))
	}
	return records, nil
}
