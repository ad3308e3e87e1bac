package repository

import (
	"context"
	"errors"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsQuoteIDIndex     = "quote_id-index"
)

type paymentItem struct {
	ID      string  `dynamodbav:"id"`
	QuoteID string  `dynamodbav:"quote_id"`
	Amount  float64 `dynamodbav:"amount"`
	Method  string  `dynamodbav:"method"`
	Status  string  `dynamodbav:"status"`

	DueDate string `dynamodbav:"due_date"`
	PaidAt  string `dynamodbav:"paid_at,omitempty"`

	InstallmentNumber int    `dynamodbav:"installment_number"`
	InstallmentTotal  int    `dynamodbav:"installment_total"`
	Notes             string `dynamodbav:"notes,omitempty"`

	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment installments in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//
// MarkOverdue scans for PENDENTE installments past the cutoff and rewrites
// their status one by one. The installment count per quote is small, so the
// scan plus per-item update stays cheap.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

// ListByDueDateRange scans for installments due inside [from, to]. Due dates
// are fixed-width RFC3339 strings, so the BETWEEN comparison is chronological.
func (r *PaymentDynamoRepository) ListByDueDateRange(ctx context.Context, from, to time.Time) ([]entities.Payment, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#due_date BETWEEN :from AND :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: from.UTC().Format(timestampLayout)},
			":to":   &types.AttributeValueMemberS{Value: to.UTC().Format(timestampLayout)},
		},
		ExpressionAttributeNames: map[string]string{
			"#due_date": "due_date",
		},
	}

	var payments []entities.Payment
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			payments = append(payments, fromPaymentItem(it))
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now

	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	return p, nil
}

// MarkOverdue reclassifies every PENDENTE installment due before the cutoff to
// ATRASADO. Returns how many installments changed.
func (r *PaymentDynamoRepository) MarkOverdue(ctx context.Context, before time.Time) (int, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status = :pendente AND #due_date < :cutoff"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pendente": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPendente)},
			":cutoff":   &types.AttributeValueMemberS{Value: before.UTC().Format(timestampLayout)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status":   "status",
			"#due_date": "due_date",
		},
	}

	now := time.Now().UTC().Format(timestampLayout)
	count := 0
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return count, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return count, err
			}

			_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: it.ID},
				},
				// Re-check the status so a concurrent payment is not clobbered.
				ConditionExpression: aws.String("#status = :pendente"),
				UpdateExpression:    aws.String("SET #status = :atrasado, #updated_at = :updated_at"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pendente":   &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPendente)},
					":atrasado":   &types.AttributeValueMemberS{Value: string(entities.PaymentStatusAtrasado)},
					":updated_at": &types.AttributeValueMemberS{Value: now},
				},
				ExpressionAttributeNames: map[string]string{
					"#status":     "status",
					"#updated_at": "updated_at",
				},
			})
			if err != nil {
				var cfe *types.ConditionalCheckFailedException
				if errors.As(err, &cfe) {
					continue
				}
				return count, err
			}
			count++
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return count, nil
}

func (r *PaymentDynamoRepository) DeleteByQuoteID(ctx context.Context, quoteID string) error {
	payments, err := r.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return err
	}
	for _, p := range payments {
		_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: p.ID},
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	it := paymentItem{
		ID:                 p.ID,
		QuoteID:            p.QuoteID,
		Amount:             p.Amount,
		Method:             string(p.Method),
		Status:             string(p.Status),
		DueDate:            p.DueDate.UTC().Format(timestampLayout),
		InstallmentNumber:  p.InstallmentNumber,
		InstallmentTotal:   p.InstallmentTotal,
		Notes:              p.Notes,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		CreatedAt:          p.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:          p.UpdatedAt.UTC().Format(timestampLayout),
	}
	if p.PaidAt != nil {
		it.PaidAt = p.PaidAt.UTC().Format(timestampLayout)
	}
	return it
}

func fromPaymentItem(it paymentItem) entities.Payment {
	dueDate, _ := time.Parse(time.RFC3339Nano, it.DueDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	p := entities.Payment{
		ID:                it.ID,
		QuoteID:           it.QuoteID,
		Amount:            it.Amount,
		Method:            entities.PaymentMethod(it.Method),
		Status:            entities.PaymentStatus(it.Status),
		DueDate:           dueDate,
		InstallmentNumber: it.InstallmentNumber,
		InstallmentTotal:  it.InstallmentTotal,
		Notes:             it.Notes,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	if t, err := time.Parse(time.RFC3339Nano, it.PaidAt); err == nil && it.PaidAt != "" {
		p.PaidAt = &t
	}
	return p
}
