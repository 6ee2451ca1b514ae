package clientpackage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// fakeAPI отдает заранее заданные страницы Query
type fakeAPI struct {
	pages   []*dynamodb.QueryOutput
	queries []*dynamodb.QueryInput
	item    map[string]types.AttributeValue
	err     error
}

func (f *fakeAPI) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.item}, nil
}

func (f *fakeAPI) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *in
	f.queries = append(f.queries, &copied)
	page := f.pages[len(f.queries)-1]
	return page, nil
}

func (f *fakeAPI) UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeAPI) TransactWriteItems(context.Context, *dynamodb.TransactWriteItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
func n(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }

func TestServiceRefsAV_Shapes(t *testing.T) {
	item := map[string]types.AttributeValue{
		"id":        s("cp-1"),
		"client_id": s("c1"),
		"status":    s("ativo"),
		"package_snapshot": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"name": s("Facial x3"),
			"services": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"1":  &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{"service_id": s("svc2"), "total": n("2")}},
				"0":  &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{"service_id": s("svc1"), "id": s("item-1"), "quantity": n("3")}},
				"10": s("svc3"),
			}},
		}},
		"services": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			s("raw1"),
			n("42"),
			&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{"id": s("raw3")}},
		}},
		"expiration_date": s("2026-12-31"),
		"session_history": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"service_id":     s("svc1"),
				"status":         s("concluido"),
				"appointment_id": s("a1"),
			}},
		}},
	}

	var it packageItem
	require.NoError(t, attributevalue.UnmarshalMap(item, &it))
	pkg := fromPackageItem(it)

	require.NotNil(t, pkg.Snapshot)
	assert.Equal(t, "Facial x3", pkg.Snapshot.Name)
	assert.Equal(t, []string{"svc1", "svc2", "svc3"}, pkg.Snapshot.Services.ServiceIDs())
	assert.Equal(t, 3, pkg.Snapshot.Services[0].Count())
	assert.Equal(t, "item-1", pkg.Snapshot.Services[0].AliasID)
	assert.Equal(t, 2, pkg.Snapshot.Services[1].Count())
	assert.Equal(t, domain.ServiceRefBare, pkg.Snapshot.Services[2].Kind)

	assert.Equal(t, []string{"raw1", "42", "raw3"}, pkg.Services.ServiceIDs())

	require.NotNil(t, pkg.ExpirationDate)
	assert.Equal(t, 2026, pkg.ExpirationDate.Year())

	require.Len(t, pkg.SessionHistory, 1)
	assert.Equal(t, domain.SessionConcluded, pkg.SessionHistory[0].Status)
}

func TestServiceRefsAV_InvalidShape(t *testing.T) {
	item := map[string]types.AttributeValue{
		"id":       s("cp-1"),
		"services": &types.AttributeValueMemberBOOL{Value: true},
	}

	var it packageItem
	err := attributevalue.UnmarshalMap(item, &it)
	assert.Error(t, err)
}

func TestServiceRefsAV_RoundTrip(t *testing.T) {
	refs := serviceRefsAV{
		domain.NewObjectServiceRef("svc1", "alias", "Facial", 3, 0),
		domain.NewBareServiceRef("svc2"),
	}

	av, err := refs.MarshalDynamoDBAttributeValue()
	require.NoError(t, err)

	var decoded serviceRefsAV
	require.NoError(t, decoded.UnmarshalDynamoDBAttributeValue(av))
	require.Len(t, decoded, 2)
	assert.Equal(t, "alias", decoded[0].AliasID)
	assert.Equal(t, 3, decoded[0].Count())
	assert.Equal(t, "svc2", decoded[1].ServiceID)
}

func TestListByClientAndStatus_Pagination(t *testing.T) {
	api := &fakeAPI{pages: []*dynamodb.QueryOutput{
		{
			Items: []map[string]types.AttributeValue{
				{"id": s("cp-1"), "client_id": s("c1"), "status": s("ativo")},
			},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": s("cp-1")},
		},
		{
			Items: []map[string]types.AttributeValue{
				{"id": s("cp-2"), "client_id": s("c1"), "status": s("ativo")},
			},
		},
	}}
	repo := NewRepository(api, "client_packages")

	got, err := repo.ListByClientAndStatus(context.Background(), "c1", domain.PackageActive)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cp-2", got[1].ID)

	require.Len(t, api.queries, 2)
	assert.Equal(t, clientStatusIndex, *api.queries[0].IndexName)
	assert.Nil(t, api.queries[0].ExclusiveStartKey)
	assert.NotNil(t, api.queries[1].ExclusiveStartKey)
}

func TestListByClientAndStatus_Error(t *testing.T) {
	repo := NewRepository(&fakeAPI{err: errors.New("throttled")}, "client_packages")

	_, err := repo.ListByClientAndStatus(context.Background(), "c1", domain.PackageActive)
	assert.ErrorIs(t, err, ErrQuery)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewRepository(&fakeAPI{}, "client_packages")

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestAppendHistoryItem(t *testing.T) {
	repo := NewRepository(&fakeAPI{}, "client_packages")

	item, err := repo.AppendHistoryItem("cp-1", 2, []domain.SessionHistoryEntry{
		{ServiceID: "svc1", EmployeeID: "e1", Date: "2026-03-10", Time: "10:00", Status: domain.SessionScheduled, AppointmentID: "a9"},
	})
	require.NoError(t, err)
	require.NotNil(t, item.Update)
	assert.Equal(t, "client_packages", *item.Update.TableName)

	entries, ok := item.Update.ExpressionAttributeValues[":entries"].(*types.AttributeValueMemberL)
	require.True(t, ok)
	require.Len(t, entries.Value, 1)

	var decoded SessionEntryItem
	require.NoError(t, attributevalue.Unmarshal(entries.Value[0], &decoded))
	assert.Equal(t, "a9", decoded.AppointmentID)
	assert.Equal(t, "agendado", decoded.Status)

	// Длина истории на момент чтения защищает от параллельной записи по тому же пакету
	assert.Contains(t, *item.Update.ConditionExpression, "size(session_history) = :len")
	length, ok := item.Update.ExpressionAttributeValues[":len"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "2", length.Value)
}
