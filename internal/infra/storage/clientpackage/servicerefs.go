package clientpackage

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// serviceRefsAV список услуг пакета в DynamoDB
// Документы разных поколений хранят его списком (L) или словарем (M),
// элементы: строка, число или объект {service_id, id, name, quantity, total}
type serviceRefsAV domain.ServiceRefs

func (s *serviceRefsAV) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var elems []types.AttributeValue

	switch v := av.(type) {
	case nil, *types.AttributeValueMemberNULL:
		*s = nil
		return nil
	case *types.AttributeValueMemberL:
		elems = v.Value
	case *types.AttributeValueMemberM:
		for _, key := range domain.SortedMapKeys(v.Value) {
			elems = append(elems, v.Value[key])
		}
	default:
		return fmt.Errorf("%w: services must be a list or a map, got %T", domain.ErrInvalidServiceRef, av)
	}

	refs := make(serviceRefsAV, 0, len(elems))
	for _, elem := range elems {
		ref, err := decodeServiceRef(elem)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}
	*s = refs
	return nil
}

func (s serviceRefsAV) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	list := make([]types.AttributeValue, 0, len(s))
	for _, ref := range s {
		m := map[string]types.AttributeValue{
			"service_id": &types.AttributeValueMemberS{Value: ref.ServiceID},
		}
		if ref.AliasID != "" {
			m["id"] = &types.AttributeValueMemberS{Value: ref.AliasID}
		}
		if ref.Name != "" {
			m["name"] = &types.AttributeValueMemberS{Value: ref.Name}
		}
		if q := ref.Quantity(); q > 0 {
			m["quantity"] = &types.AttributeValueMemberN{Value: strconv.Itoa(q)}
		}
		if t := ref.Total(); t > 0 {
			m["total"] = &types.AttributeValueMemberN{Value: strconv.Itoa(t)}
		}
		list = append(list, &types.AttributeValueMemberM{Value: m})
	}
	return &types.AttributeValueMemberL{Value: list}, nil
}

func decodeServiceRef(av types.AttributeValue) (domain.ServiceRef, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return domain.NewBareServiceRef(v.Value), nil
	case *types.AttributeValueMemberN:
		return domain.NewBareServiceRef(v.Value), nil
	case *types.AttributeValueMemberM:
		quantity, err := countAttr(v.Value["quantity"])
		if err != nil {
			return domain.ServiceRef{}, err
		}
		total, err := countAttr(v.Value["total"])
		if err != nil {
			return domain.ServiceRef{}, err
		}
		return domain.NewObjectServiceRef(
			stringAttr(v.Value["service_id"]),
			stringAttr(v.Value["id"]),
			stringAttr(v.Value["name"]),
			quantity,
			total,
		), nil
	default:
		return domain.ServiceRef{}, fmt.Errorf("%w: unsupported element %T", domain.ErrInvalidServiceRef, av)
	}
}

// stringAttr строка из S или N, иначе пусто
func stringAttr(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

// countAttr количество из N или числовой строки; отсутствие и не положительные значения дают 0
func countAttr(av types.AttributeValue) (int, error) {
	var raw string
	switch v := av.(type) {
	case nil, *types.AttributeValueMemberNULL:
		return 0, nil
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
		if raw == "" {
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("%w: quantity must be a number, got %T", domain.ErrInvalidServiceRef, av)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q: %v", domain.ErrInvalidServiceRef, raw, err)
	}
	if f <= 0 || math.IsNaN(f) {
		return 0, nil
	}
	return int(f), nil
}
