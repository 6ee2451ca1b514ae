package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/m04kA/SMC-SalonBooking/pkg/ratelimit"
)

// Limited ограничивает частоту обращений к DynamoDB общим лимитером
// Чтения при исчерпанном лимите сразу завершаются ratelimit.ErrRateLimited,
// записи ждут токен
type Limited struct {
	api     API
	limiter *ratelimit.Limiter
}

// NewLimited оборачивает клиент
func NewLimited(api API, limiter *ratelimit.Limiter) *Limited {
	return &Limited{api: api, limiter: limiter}
}

var _ API = (*Limited)(nil)

func (l *Limited) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if !l.limiter.Allow() {
		return nil, ratelimit.ErrRateLimited
	}
	return l.api.GetItem(ctx, params, optFns...)
}

func (l *Limited) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if !l.limiter.Allow() {
		return nil, ratelimit.ErrRateLimited
	}
	return l.api.Query(ctx, params, optFns...)
}

func (l *Limited) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.api.PutItem(ctx, params, optFns...)
}

func (l *Limited) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.api.UpdateItem(ctx, params, optFns...)
}

func (l *Limited) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.api.TransactWriteItems(ctx, params, optFns...)
}
