package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidServiceRef возвращается, когда элемент списка услуг пакета не удается разобрать
var ErrInvalidServiceRef = errors.New("domain: invalid service reference")

// ServiceRefKind исходная форма записи об услуге в пакете
type ServiceRefKind int

const (
	// ServiceRefBare запись хранилась как строка с ID услуги
	ServiceRefBare ServiceRefKind = iota
	// ServiceRefObject запись хранилась как объект с service_id/id и количеством
	ServiceRefObject
)

// ServiceRef каноническая запись об услуге в составе пакета
//
// В хранилище встречаются три формы: "svc1", {"id": "svc1"}, {"service_id": "svc1", "id": "alias"}.
// Все формы приводятся к этой структуре один раз при чтении, дальше по форме никто не ветвится.
type ServiceRef struct {
	Kind ServiceRefKind

	// ServiceID ID услуги каталога: service_id, иначе id, иначе строка целиком
	ServiceID string

	// AliasID собственный id объекта, если он отличается от ServiceID
	// Часть истории сессий записана под этим ID
	AliasID string

	Name string

	quantity int
	total    int
}

// NewBareServiceRef запись из строкового ID
func NewBareServiceRef(serviceID string) ServiceRef {
	return ServiceRef{Kind: ServiceRefBare, ServiceID: serviceID}
}

// NewObjectServiceRef запись из объекта
// quantity и total <= 0 означают "количество не указано"
func NewObjectServiceRef(serviceID, id, name string, quantity, total int) ServiceRef {
	ref := ServiceRef{
		Kind:      ServiceRefObject,
		ServiceID: serviceID,
		Name:      name,
		quantity:  quantity,
		total:     total,
	}
	if ref.ServiceID == "" {
		ref.ServiceID = id
	} else if id != "" && id != serviceID {
		ref.AliasID = id
	}
	return ref
}

// Matches проверяет, относится ли запись к услуге serviceID
func (r ServiceRef) Matches(serviceID string) bool {
	if serviceID == "" {
		return false
	}
	return r.ServiceID == serviceID || (r.AliasID != "" && r.AliasID == serviceID)
}

// Count количество сессий: quantity, иначе total, иначе 1
func (r ServiceRef) Count() int {
	if r.quantity > 0 {
		return r.quantity
	}
	if r.total > 0 {
		return r.total
	}
	return 1
}

// Quantity и Total возвращают исходные значения (0 - не указано)
func (r ServiceRef) Quantity() int { return r.quantity }
func (r ServiceRef) Total() int { return r.total }

// ServiceRefs список услуг пакета
type ServiceRefs []ServiceRef

// Find ищет запись по ID услуги (сравнение с service_id и id)
func (refs ServiceRefs) Find(serviceID string) (ServiceRef, bool) {
	for _, ref := range refs {
		if ref.Matches(serviceID) {
			return ref, true
		}
	}
	return ServiceRef{}, false
}

// ServiceIDs ID услуг каталога в порядке пакета
func (refs ServiceRefs) ServiceIDs() []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ServiceID != "" {
			ids = append(ids, ref.ServiceID)
		}
	}
	return ids
}

// UnmarshalJSON принимает массив или объект-словарь (берутся значения)
// Элементы: строка, число или объект {service_id, id, name, quantity, total}
func (refs *ServiceRefs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*refs = nil
		return nil
	}

	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidServiceRef, err)
		}
	case '{':
		var byKey map[string]json.RawMessage
		if err := json.Unmarshal(data, &byKey); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidServiceRef, err)
		}
		for _, key := range SortedMapKeys(byKey) {
			items = append(items, byKey[key])
		}
	default:
		return fmt.Errorf("%w: services must be an array or an object", ErrInvalidServiceRef)
	}

	result := make(ServiceRefs, 0, len(items))
	for _, item := range items {
		ref, err := parseServiceRefJSON(item)
		if err != nil {
			return err
		}
		result = append(result, ref)
	}
	*refs = result
	return nil
}

// MarshalJSON сохраняет записи в объектной форме
func (refs ServiceRefs) MarshalJSON() ([]byte, error) {
	out := make([]map[string]interface{}, 0, len(refs))
	for _, ref := range refs {
		item := map[string]interface{}{"service_id": ref.ServiceID}
		if ref.AliasID != "" {
			item["id"] = ref.AliasID
		}
		if ref.Name != "" {
			item["name"] = ref.Name
		}
		if ref.quantity > 0 {
			item["quantity"] = ref.quantity
		}
		if ref.total > 0 {
			item["total"] = ref.total
		}
		out = append(out, item)
	}
	return json.Marshal(out)
}

type serviceRefObjectJSON struct {
	ServiceID flexString `json:"service_id"`
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	Quantity  *float64   `json:"quantity"`
	Total     *float64   `json:"total"`
}

func parseServiceRefJSON(raw json.RawMessage) (ServiceRef, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ServiceRef{}, fmt.Errorf("%w: empty element", ErrInvalidServiceRef)
	}

	if raw[0] != '{' {
		var id flexString
		if err := json.Unmarshal(raw, &id); err != nil {
			return ServiceRef{}, fmt.Errorf("%w: %v", ErrInvalidServiceRef, err)
		}
		return NewBareServiceRef(string(id)), nil
	}

	var obj serviceRefObjectJSON
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ServiceRef{}, fmt.Errorf("%w: %v", ErrInvalidServiceRef, err)
	}
	return NewObjectServiceRef(string(obj.ServiceID), string(obj.ID), obj.Name, floatToCount(obj.Quantity), floatToCount(obj.Total)), nil
}

func floatToCount(v *float64) int {
	if v == nil || *v <= 0 || math.IsNaN(*v) {
		return 0
	}
	return int(*v)
}

// flexString принимает JSON строку или число (старые документы хранят ID числами)
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

// SortedMapKeys порядок обхода словаря: сначала целочисленные ключи по возрастанию,
// затем остальные в лексикографическом порядке
func SortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return strings.Compare(keys[i], keys[j]) < 0
		}
	})
	return keys
}
