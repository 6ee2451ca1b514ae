package clientpackage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dynamo"
)

const clientStatusIndex = "client_id-status-index"

// Repository купленные пакеты клиентов (DynamoDB)
type Repository struct {
	api       dynamo.API
	tableName string
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(api dynamo.API, tableName string) *Repository {
	return &Repository{api: api, tableName: tableName}
}

// TableName имя таблицы (для транзакционных записей)
func (r *Repository) TableName() string {
	return r.tableName
}

// ListByClientAndStatus пакеты клиента в статусе status
// Читает все страницы индекса
func (r *Repository) ListByClientAndStatus(ctx context.Context, clientID string, status domain.PackageStatus) ([]*domain.ClientPackage, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(clientStatusIndex),
		KeyConditionExpression: aws.String("client_id = :cid AND #status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":    &types.AttributeValueMemberS{Value: clientID},
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}

	result := make([]*domain.ClientPackage, 0)
	for {
		out, err := r.api.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClientAndStatus - client=%s: %v", ErrQuery, clientID, err)
		}

		for _, raw := range out.Items {
			var it packageItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("%w: ListByClientAndStatus: %v", ErrDecodeItem, err)
			}
			result = append(result, fromPackageItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}

// GetByID возвращает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ClientPackage, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - id=%s: %v", ErrQuery, id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrPackageNotFound
	}

	var it packageItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrDecodeItem, err)
	}
	return fromPackageItem(it), nil
}

// AppendHistoryItem операция транзакции: дописать записи в session_history пакета
// Пакет должен существовать, быть активным и иметь ровно historyLen записей истории:
// параллельная запись по тому же пакету отменит транзакцию
func (r *Repository) AppendHistoryItem(packageID string, historyLen int, entries []domain.SessionHistoryEntry) (types.TransactWriteItem, error) {
	items := make([]SessionEntryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToSessionEntryItem(e))
	}

	av, err := attributevalue.Marshal(items)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("%w: AppendHistoryItem: %v", ErrDecodeItem, err)
	}

	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: packageID},
			},
			UpdateExpression: aws.String("SET session_history = list_append(if_not_exists(session_history, :empty), :entries)"),
			ConditionExpression: aws.String("attribute_exists(id) AND #status = :active AND " +
				"(attribute_not_exists(session_history) OR size(session_history) = :len)"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":entries": av,
				":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
				":active":  &types.AttributeValueMemberS{Value: string(domain.PackageActive)},
				":len":     &types.AttributeValueMemberN{Value: strconv.Itoa(historyLen)},
			},
		},
	}, nil
}
