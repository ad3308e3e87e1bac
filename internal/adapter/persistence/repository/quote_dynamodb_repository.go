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

const defaultQuotesTableName = "quotes"

type materialItem struct {
	ID        string  `dynamodbav:"id"`
	Name      string  `dynamodbav:"name"`
	Brand     string  `dynamodbav:"brand,omitempty"`
	Quantity  float64 `dynamodbav:"quantity"`
	Unit      string  `dynamodbav:"unit,omitempty"`
	UnitPrice float64 `dynamodbav:"unit_price"`
	LineTotal float64 `dynamodbav:"line_total"`
}

type helperItem struct {
	Name      string  `dynamodbav:"name"`
	DailyRate float64 `dynamodbav:"daily_rate"`
	Days      int     `dynamodbav:"days"`
}

type quoteItem struct {
	ID       string `dynamodbav:"id"`
	ClientID string `dynamodbav:"client_id"`

	SiteAddress    string  `dynamodbav:"site_address"`
	SiteDetails    string  `dynamodbav:"site_details,omitempty"`
	ServiceType    string  `dynamodbav:"service_type"`
	Specifications string  `dynamodbav:"specifications,omitempty"`
	Notes          string  `dynamodbav:"notes,omitempty"`
	Area           float64 `dynamodbav:"area,omitempty"`
	DurationDays   int     `dynamodbav:"duration_days,omitempty"`

	PricingMode      string         `dynamodbav:"pricing_mode"`
	FixedPrice       float64        `dynamodbav:"fixed_price,omitempty"`
	PrimaryName      string         `dynamodbav:"primary_name,omitempty"`
	PrimaryDailyRate float64        `dynamodbav:"primary_daily_rate,omitempty"`
	PrimaryDays      int            `dynamodbav:"primary_days,omitempty"`
	Helpers          []helperItem   `dynamodbav:"helpers,omitempty"`
	Materials        []materialItem `dynamodbav:"materials"`

	ProfitMargin   float64 `dynamodbav:"profit_margin"`
	MaterialsValue float64 `dynamodbav:"materials_value"`
	MaterialsCost  float64 `dynamodbav:"materials_cost"`
	LaborValue     float64 `dynamodbav:"labor_value"`
	TotalValue     float64 `dynamodbav:"total_value"`

	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	StartDate   string `dynamodbav:"start_date,omitempty"`
	EndDate     string `dynamodbav:"end_date,omitempty"`
	CompletedAt string `dynamodbav:"completed_at,omitempty"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Materials and helpers live as nested lists on the item, so a quote is always
// read and written as one document. AppendMaterial uses list_append so material
// additions never rewrite the whole item.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
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
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// List scans the table. Filters are applied server side: client_id by
// equality, From/To against created_at. Timestamps are stored as fixed-width
// RFC3339 strings, so lexicographic comparison matches chronological order.
func (r *QuoteDynamoRepository) List(ctx context.Context, filter entities.ReportFilter) ([]entities.Quote, error) {
	var exprParts []string
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}

	if filter.ClientID != "" {
		exprParts = append(exprParts, "#client_id = :client_id")
		vals[":client_id"] = &types.AttributeValueMemberS{Value: filter.ClientID}
		names["#client_id"] = "client_id"
	}
	if filter.From != nil {
		exprParts = append(exprParts, "#created_at >= :from")
		vals[":from"] = &types.AttributeValueMemberS{Value: filter.From.UTC().Format(timestampLayout)}
		names["#created_at"] = "created_at"
	}
	if filter.To != nil {
		exprParts = append(exprParts, "#created_at <= :to")
		vals[":to"] = &types.AttributeValueMemberS{Value: filter.To.UTC().Format(timestampLayout)}
		names["#created_at"] = "created_at"
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if len(exprParts) > 0 {
		expr := exprParts[0]
		for _, p := range exprParts[1:] {
			expr += " AND " + p
		}
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeValues = vals
		input.ExpressionAttributeNames = names
	}

	var quotes []entities.Quote
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			quotes = append(quotes, fromQuoteItem(it))
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) UpdateDetails(ctx context.Context, id string, upd interfaces.QuoteDetailsUpdate) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}

		setStr := func(field string, v *string) {
			if v == nil {
				return
			}
			expr += ", #" + field + " = :" + field
			vals[":"+field] = &types.AttributeValueMemberS{Value: *v}
			names["#"+field] = field
		}
		setTime := func(field string, v *time.Time) {
			if v == nil {
				return
			}
			expr += ", #" + field + " = :" + field
			vals[":"+field] = &types.AttributeValueMemberS{Value: v.UTC().Format(timestampLayout)}
			names["#"+field] = field
		}
		setStr("site_address", upd.SiteAddress)
		setStr("site_details", upd.SiteDetails)
		setStr("notes", upd.Notes)
		setTime("start_date", upd.StartDate)
		setTime("end_date", upd.EndDate)

		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, upd interfaces.QuoteStatusUpdate) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(upd.Status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if upd.StartDate != nil {
			expr += ", #start_date = :start_date"
			vals[":start_date"] = &types.AttributeValueMemberS{Value: upd.StartDate.UTC().Format(timestampLayout)}
			names["#start_date"] = "start_date"
		}
		if upd.CompletedAt != nil {
			expr += ", #completed_at = :completed_at"
			vals[":completed_at"] = &types.AttributeValueMemberS{Value: upd.CompletedAt.UTC().Format(timestampLayout)}
			names["#completed_at"] = "completed_at"
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) AppendMaterial(ctx context.Context, id string, m entities.Material, totals interfaces.QuoteTotalsUpdate) (entities.Quote, error) {
	mAv, err := attributevalue.Marshal(toMaterialItem(m))
	if err != nil {
		return entities.Quote{}, err
	}

	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #materials = list_append(if_not_exists(#materials, :empty), :m), " +
			"#materials_value = :materials_value, #materials_cost = :materials_cost, " +
			"#total_value = :total_value, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":m":               &types.AttributeValueMemberL{Value: []types.AttributeValue{mAv}},
			":empty":           &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":materials_value": &types.AttributeValueMemberN{Value: floatToString(totals.MaterialsValue)},
			":materials_cost":  &types.AttributeValueMemberN{Value: floatToString(totals.MaterialsCost)},
			":total_value":     &types.AttributeValueMemberN{Value: floatToString(totals.TotalValue)},
			":updated_at":      &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#materials":       "materials",
			"#materials_value": "materials_value",
			"#materials_cost":  "materials_cost",
			"#total_value":     "total_value",
			"#updated_at":      "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	now := time.Now().UTC().Format(timestampLayout)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toMaterialItem(m entities.Material) materialItem {
	return materialItem{
		ID:        m.ID,
		Name:      m.Name,
		Brand:     m.Brand,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		UnitPrice: m.UnitPrice,
		LineTotal: m.LineTotal,
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:               q.ID,
		ClientID:         q.ClientID,
		SiteAddress:      q.SiteAddress,
		SiteDetails:      q.SiteDetails,
		ServiceType:      q.ServiceType,
		Specifications:   q.Specifications,
		Notes:            q.Notes,
		Area:             q.Area,
		DurationDays:     q.DurationDays,
		PricingMode:      string(q.PricingMode),
		FixedPrice:       q.FixedPrice,
		PrimaryName:      q.PrimaryName,
		PrimaryDailyRate: q.PrimaryDailyRate,
		PrimaryDays:      q.PrimaryDays,
		ProfitMargin:     q.ProfitMargin,
		MaterialsValue:   q.MaterialsValue,
		MaterialsCost:    q.MaterialsCost,
		LaborValue:       q.LaborValue,
		TotalValue:       q.TotalValue,
		Status:           string(q.Status),
		CreatedAt:        q.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:        q.UpdatedAt.UTC().Format(timestampLayout),
	}

	it.Materials = make([]materialItem, 0, len(q.Materials))
	for _, m := range q.Materials {
		it.Materials = append(it.Materials, toMaterialItem(m))
	}
	for _, h := range q.Helpers {
		it.Helpers = append(it.Helpers, helperItem{Name: h.Name, DailyRate: h.DailyRate, Days: h.Days})
	}

	if q.StartDate != nil {
		it.StartDate = q.StartDate.UTC().Format(timestampLayout)
	}
	if q.EndDate != nil {
		it.EndDate = q.EndDate.UTC().Format(timestampLayout)
	}
	if q.CompletedAt != nil {
		it.CompletedAt = q.CompletedAt.UTC().Format(timestampLayout)
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	q := entities.Quote{
		ID:               it.ID,
		ClientID:         it.ClientID,
		SiteAddress:      it.SiteAddress,
		SiteDetails:      it.SiteDetails,
		ServiceType:      it.ServiceType,
		Specifications:   it.Specifications,
		Notes:            it.Notes,
		Area:             it.Area,
		DurationDays:     it.DurationDays,
		PricingMode:      entities.PricingMode(it.PricingMode),
		FixedPrice:       it.FixedPrice,
		PrimaryName:      it.PrimaryName,
		PrimaryDailyRate: it.PrimaryDailyRate,
		PrimaryDays:      it.PrimaryDays,
		ProfitMargin:     it.ProfitMargin,
		MaterialsValue:   it.MaterialsValue,
		MaterialsCost:    it.MaterialsCost,
		LaborValue:       it.LaborValue,
		TotalValue:       it.TotalValue,
		Status:           entities.QuoteStatus(it.Status),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}

	q.Materials = make([]entities.Material, 0, len(it.Materials))
	for _, m := range it.Materials {
		q.Materials = append(q.Materials, entities.Material{
			ID:        m.ID,
			Name:      m.Name,
			Brand:     m.Brand,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
			LineTotal: m.LineTotal,
		})
	}
	for _, h := range it.Helpers {
		q.Helpers = append(q.Helpers, entities.Helper{Name: h.Name, DailyRate: h.DailyRate, Days: h.Days})
	}

	if t, err := time.Parse(time.RFC3339Nano, it.StartDate); err == nil && it.StartDate != "" {
		q.StartDate = &t
	}
	if t, err := time.Parse(time.RFC3339Nano, it.EndDate); err == nil && it.EndDate != "" {
		q.EndDate = &t
	}
	if t, err := time.Parse(time.RFC3339Nano, it.CompletedAt); err == nil && it.CompletedAt != "" {
		q.CompletedAt = &t
	}
	return q
}
