package client

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

type clientItem struct {
	ID              string          `dynamodbav:"id"`
	Name            string          `dynamodbav:"name"`
	Phone           string          `dynamodbav:"phone,omitempty"`
	Email           string          `dynamodbav:"email,omitempty"`
	Dependents      []dependentItem `dynamodbav:"dependents,omitempty"`
	PendingServices []pendingItem   `dynamodbav:"pending_services,omitempty"`
}

type dependentItem struct {
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	Relationship string `dynamodbav:"relationship,omitempty"`
}

// pendingItem старая форма долга внутри документа клиента: id может отсутствовать
type pendingItem struct {
	ID        string `dynamodbav:"id,omitempty"`
	ServiceID string `dynamodbav:"service_id"`
	Name      string `dynamodbav:"name,omitempty"`
	Status    string `dynamodbav:"status,omitempty"`
}

// Repository клиенты салона (DynamoDB)
type Repository struct {
	api       dynamo.API
	tableName string
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(api dynamo.API, tableName string) *Repository {
	return &Repository{api: api, tableName: tableName}
}

// GetByID возвращает клиента с зависимыми лицами и встроенными долгами
func (r *Repository) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - id=%s: %v", ErrQuery, clientID, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrClientNotFound
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrDecodeItem, err)
	}

	c := &domain.Client{
		ID:              it.ID,
		Name:            it.Name,
		Phone:           it.Phone,
		Email:           it.Email,
		Dependents:      make([]domain.Dependent, 0, len(it.Dependents)),
		PendingServices: make([]domain.PendingService, 0, len(it.PendingServices)),
	}
	for _, d := range it.Dependents {
		c.Dependents = append(c.Dependents, domain.Dependent{ID: d.ID, Name: d.Name, Relationship: d.Relationship})
	}
	for _, p := range it.PendingServices {
		c.PendingServices = append(c.PendingServices, domain.PendingService{
			ID:        p.ID,
			ClientID:  it.ID,
			ServiceID: p.ServiceID,
			Name:      p.Name,
			Status:    domain.PendingServiceStatus(p.Status),
		})
	}
	return c, nil
}
