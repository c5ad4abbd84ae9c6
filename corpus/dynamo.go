package corpus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/fictadex/model"
	"gopkg.in/yaml.v3"
)

type DynamoConfig struct {
	Endpoint string
	Region   string
	Table    string
}

// Dynamo reads works from a table keyed by piece index (PK, a number). Each
// item carries a Title string and a Snippets string holding the snippet list
// in the corpus file's YAML layout.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(cfg DynamoConfig) (*Dynamo, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return NewDynamoWithClient(dynamodb.New(sess), cfg.Table), nil
}

func NewDynamoWithClient(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

func (d *Dynamo) Work(ctx context.Context, index int) (*model.Work, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {N: aws.String(strconv.Itoa(index))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB for piece %d: %w", index, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("piece %d: %w", index, ErrWorkNotFound)
	}
	return decodeItem(index, out.Item)
}

func decodeItem(index int, item map[string]*dynamodb.AttributeValue) (*model.Work, error) {
	w := &model.Work{Index: index}
	if v, ok := item["Title"]; ok && v.S != nil {
		w.Title = *v.S
	}

	v, ok := item["Snippets"]
	if !ok || v.S == nil {
		return w, nil
	}
	var raw []*fileSnippet
	if err := yaml.Unmarshal([]byte(*v.S), &raw); err != nil {
		return nil, fmt.Errorf("piece %d: bad Snippets attribute: %w", index, err)
	}
	snippets, err := decodeSnippets(raw)
	if err != nil {
		return nil, fmt.Errorf("piece %d: %w", index, err)
	}
	w.Snippets = snippets
	return w, nil
}

// PutWork stores w in the layout Work reads.
func (d *Dynamo) PutWork(ctx context.Context, w *model.Work) error {
	snippets, err := yaml.Marshal(encodeSnippets(w.Snippets))
	if err != nil {
		return fmt.Errorf("piece %d: %w", w.Index, err)
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":       {N: aws.String(strconv.Itoa(w.Index))},
			"Title":    {S: aws.String(w.Title)},
			"Snippets": {S: aws.String(string(snippets))},
		},
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB for piece %d: %w", w.Index, err)
	}
	return nil
}
