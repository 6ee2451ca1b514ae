package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dynamo"
)

const referenceIndex = "reference_id-index"

// transactionItem финансовая операция
//
// Table requirements:
//   - PK: id (string)
//   - GSI: reference_id-index (PK: reference_id)
type transactionItem struct {
	ID             string  `dynamodbav:"id"`
	ReferenceID    string  `dynamodbav:"reference_id"`
	Type           string  `dynamodbav:"type"`
	Category       string  `dynamodbav:"category"`
	Description    string  `dynamodbav:"description,omitempty"`
	Amount         float64 `dynamodbav:"amount"`
	Status         string  `dynamodbav:"status"`
	SubscriptionID string  `dynamodbav:"subscription_id,omitempty"`
	PaymentMethod  string  `dynamodbav:"payment_method,omitempty"`
	CreatedAt      string  `dynamodbav:"created_at"`
	UpdatedAt      string  `dynamodbav:"updated_at"`
}

// Repository финансовые операции и подписки (DynamoDB)
type Repository struct {
	api                dynamo.API
	transactionsTable  string
	subscriptionsTable string
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(api dynamo.API, transactionsTable, subscriptionsTable string) *Repository {
	return &Repository{
		api:                api,
		transactionsTable:  transactionsTable,
		subscriptionsTable: subscriptionsTable,
	}
}

// FindByReference ищет операцию по (reference_id, type, category)
func (r *Repository) FindByReference(
	ctx context.Context,
	referenceID string,
	txType domain.TransactionType,
	category domain.TransactionCategory,
) (*domain.FinancialTransaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.transactionsTable),
		IndexName:              aws.String(referenceIndex),
		KeyConditionExpression: aws.String("reference_id = :ref"),
		FilterExpression:       aws.String("#type = :type AND category = :category"),
		ExpressionAttributeNames: map[string]string{
			"#type": "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref":      &types.AttributeValueMemberS{Value: referenceID},
			":type":     &types.AttributeValueMemberS{Value: string(txType)},
			":category": &types.AttributeValueMemberS{Value: string(category)},
		},
	}

	for {
		out, err := r.api.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: FindByReference - reference=%s: %v", ErrQuery, referenceID, err)
		}

		if len(out.Items) > 0 {
			var it transactionItem
			if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
				return nil, fmt.Errorf("%w: FindByReference: %v", ErrDecodeItem, err)
			}
			return fromTransactionItem(it), nil
		}

		// С фильтром страница может быть пустой, а совпадение лежать дальше
		if len(out.LastEvaluatedKey) == 0 {
			return nil, ErrTransactionNotFound
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Create сохраняет новую операцию
// Повторное сохранение того же ID дает ErrTransactionExists
func (r *Repository) Create(ctx context.Context, tx *domain.FinancialTransaction) error {
	av, err := attributevalue.MarshalMap(toTransactionItem(tx))
	if err != nil {
		return fmt.Errorf("%w: Create: %v", ErrDecodeItem, err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.transactionsTable),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrTransactionExists
		}
		return fmt.Errorf("%w: Create - id=%s: %v", ErrQuery, tx.ID, err)
	}
	return nil
}

// UpdateStatus обновляет статус и сумму существующей операции
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, amount float64, updatedAt time.Time) error {
	_, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.transactionsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #status = :status, amount = :amount, updated_at = :updated"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(status)},
			":amount":  &types.AttributeValueMemberN{Value: formatAmount(amount)},
			":updated": &types.AttributeValueMemberS{Value: updatedAt.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("%w: UpdateStatus - id=%s: %v", ErrQuery, id, err)
	}
	return nil
}

// UpdateSubscriptionStatus меняет статус подписки
func (r *Repository) UpdateSubscriptionStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus, updatedAt time.Time) error {
	_, err := r.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.subscriptionsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: subscriptionID},
		},
		UpdateExpression:    aws.String("SET #status = :status, updated_at = :updated"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":  &types.AttributeValueMemberS{Value: string(status)},
			":updated": &types.AttributeValueMemberS{Value: updatedAt.UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrSubscriptionNotFound
		}
		return fmt.Errorf("%w: UpdateSubscriptionStatus - id=%s: %v", ErrQuery, subscriptionID, err)
	}
	return nil
}

func toTransactionItem(tx *domain.FinancialTransaction) transactionItem {
	return transactionItem{
		ID:             tx.ID,
		ReferenceID:    tx.ReferenceID,
		Type:           string(tx.Type),
		Category:       string(tx.Category),
		Description:    tx.Description,
		Amount:         tx.Amount,
		Status:         string(tx.Status),
		SubscriptionID: tx.SubscriptionID,
		PaymentMethod:  tx.PaymentMethod,
		CreatedAt:      tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      tx.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromTransactionItem(it transactionItem) *domain.FinancialTransaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return &domain.FinancialTransaction{
		ID:             it.ID,
		ReferenceID:    it.ReferenceID,
		Type:           domain.TransactionType(it.Type),
		Category:       domain.TransactionCategory(it.Category),
		Description:    it.Description,
		Amount:         it.Amount,
		Status:         domain.TransactionStatus(it.Status),
		SubscriptionID: it.SubscriptionID,
		PaymentMethod:  it.PaymentMethod,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
