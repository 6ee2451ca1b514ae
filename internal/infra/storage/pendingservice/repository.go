package pendingservice

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dynamo"
)

const clientStatusIndex = "client_id-status-index"

// pendingItem долг по услуге
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-status-index (PK: client_id, SK: status)
type pendingItem struct {
	ID            string `dynamodbav:"id"`
	ClientID      string `dynamodbav:"client_id"`
	ServiceID     string `dynamodbav:"service_id"`
	Name          string `dynamodbav:"name,omitempty"`
	Status        string `dynamodbav:"status"`
	AppointmentID string `dynamodbav:"appointment_id,omitempty"`
}

// Repository долги по услугам (DynamoDB)
type Repository struct {
	api       dynamo.API
	tableName string
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(api dynamo.API, tableName string) *Repository {
	return &Repository{api: api, tableName: tableName}
}

// ListByClientAndStatus долги клиента в статусе status
func (r *Repository) ListByClientAndStatus(ctx context.Context, clientID string, status domain.PendingServiceStatus) ([]*domain.PendingService, error) {
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

	result := make([]*domain.PendingService, 0)
	for {
		out, err := r.api.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClientAndStatus - client=%s: %v", ErrQuery, clientID, err)
		}

		for _, raw := range out.Items {
			var it pendingItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("%w: ListByClientAndStatus: %v", ErrDecodeItem, err)
			}
			result = append(result, &domain.PendingService{
				ID:        it.ID,
				ClientID:  it.ClientID,
				ServiceID: it.ServiceID,
				Name:      it.Name,
				Status:    domain.PendingServiceStatus(it.Status),
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}

// MarkScheduledItem операция транзакции: долг переходит в agendado и связывается с записью
// Условие не дает израсходовать один долг дважды
func (r *Repository) MarkScheduledItem(pendingServiceID, appointmentID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: pendingServiceID},
			},
			UpdateExpression:    aws.String("SET #status = :scheduled, appointment_id = :appt"),
			ConditionExpression: aws.String("#status = :open"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":scheduled": &types.AttributeValueMemberS{Value: string(domain.PendingScheduled)},
				":open":      &types.AttributeValueMemberS{Value: string(domain.PendingOpen)},
				":appt":      &types.AttributeValueMemberS{Value: appointmentID},
			},
		},
	}
}
