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
	defaultClientsTableName = "clients"
	clientsPhoneIndex       = "phone-index"
)

type clientItem struct {
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	Phone        string `dynamodbav:"phone"`
	Type         string `dynamodbav:"type"`
	CPF          string `dynamodbav:"cpf,omitempty"`
	CNPJ         string `dynamodbav:"cnpj,omitempty"`
	Email        string `dynamodbav:"email,omitempty"`
	Address      string `dynamodbav:"address"`
	Number       string `dynamodbav:"number"`
	Complement   string `dynamodbav:"complement,omitempty"`
	Neighborhood string `dynamodbav:"neighborhood,omitempty"`
	CEP          string `dynamodbav:"cep"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: phone-index (PK: phone)
//
// The phone GSI backs the find-or-create lookup on quote submission.

type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	it := toClientItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Client{}, err
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
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) FindByPhone(ctx context.Context, phone string) (entities.Client, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(clientsPhoneIndex),
		KeyConditionExpression: aws.String("phone = :phone"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":phone": &types.AttributeValueMemberS{Value: phone},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Items) == 0 {
		return entities.Client{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) List(ctx context.Context) ([]entities.Client, error) {
	var clients []entities.Client
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it clientItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			clients = append(clients, fromClientItem(it))
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return clients, nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, id string, upd interfaces.ClientUpdate) (entities.Client, error) {
	now := time.Now().UTC().Format(timestampLayout)

	expr := "SET #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#updated_at": "updated_at",
	}

	set := func(field string, v *string) {
		if v == nil {
			return
		}
		expr += ", #" + field + " = :" + field
		vals[":"+field] = &types.AttributeValueMemberS{Value: *v}
		names["#"+field] = field
	}
	set("name", upd.Name)
	set("phone", upd.Phone)
	set("email", upd.Email)
	set("address", upd.Address)
	set("neighborhood", upd.Neighborhood)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Client{}, nil
		}
		return entities.Client{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Client{}, nil
	}
	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Type:         string(c.Type),
		CPF:          c.CPF,
		CNPJ:         c.CNPJ,
		Email:        c.Email,
		Address:      c.Address,
		Number:       c.Number,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		CEP:          c.CEP,
		CreatedAt:    c.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:    c.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func fromClientItem(it clientItem) entities.Client {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Client{
		ID:           it.ID,
		Name:         it.Name,
		Phone:        it.Phone,
		Type:         entities.ClientType(it.Type),
		CPF:          it.CPF,
		CNPJ:         it.CNPJ,
		Email:        it.Email,
		Address:      it.Address,
		Number:       it.Number,
		Complement:   it.Complement,
		Neighborhood: it.Neighborhood,
		CEP:          it.CEP,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}
