package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRefs_UnmarshalJSON(t *testing.T) {
	t.Run("массив из разных форм", func(t *testing.T) {
		var refs ServiceRefs
		err := json.Unmarshal([]byte(`["svc1", {"id": "svc2", "total": 4}, {"service_id": "svc3", "id": "pkg-svc3", "quantity": 2}, 17]`), &refs)
		require.NoError(t, err)
		require.Len(t, refs, 4)

		assert.Equal(t, ServiceRefBare, refs[0].Kind)
		assert.Equal(t, "svc1", refs[0].ServiceID)
		assert.Equal(t, 1, refs[0].Count())

		assert.Equal(t, "svc2", refs[1].ServiceID)
		assert.Empty(t, refs[1].AliasID)
		assert.Equal(t, 4, refs[1].Count())

		assert.Equal(t, "svc3", refs[2].ServiceID)
		assert.Equal(t, "pkg-svc3", refs[2].AliasID)
		assert.Equal(t, 2, refs[2].Count())

		assert.Equal(t, "17", refs[3].ServiceID)
	})

	t.Run("словарь: берутся значения", func(t *testing.T) {
		var refs ServiceRefs
		err := json.Unmarshal([]byte(`{"b": {"service_id": "svcB"}, "1": "svc1", "0": "svc0"}`), &refs)
		require.NoError(t, err)
		assert.Equal(t, []string{"svc0", "svc1", "svcB"}, refs.ServiceIDs())
	})

	t.Run("null", func(t *testing.T) {
		var refs ServiceRefs
		require.NoError(t, json.Unmarshal([]byte(`null`), &refs))
		assert.Nil(t, refs)
	})

	t.Run("неподдерживаемая форма", func(t *testing.T) {
		var refs ServiceRefs
		err := json.Unmarshal([]byte(`"svc1"`), &refs)
		assert.ErrorIs(t, err, ErrInvalidServiceRef)
	})
}

func TestServiceRef_Matches(t *testing.T) {
	ref := NewObjectServiceRef("svc1", "alias-1", "", 0, 0)

	assert.True(t, ref.Matches("svc1"))
	assert.True(t, ref.Matches("alias-1"))
	assert.False(t, ref.Matches("svc2"))
	assert.False(t, ref.Matches(""))
}

func TestServiceRef_CountPrefersQuantity(t *testing.T) {
	assert.Equal(t, 3, NewObjectServiceRef("s", "", "", 3, 5).Count())
	assert.Equal(t, 5, NewObjectServiceRef("s", "", "", 0, 5).Count())
	assert.Equal(t, 1, NewObjectServiceRef("s", "", "", 0, 0).Count())
}

func TestDraftLine_Set(t *testing.T) {
	var line DraftLine

	require.NoError(t, line.Set(FieldServiceID, "svc1"))
	require.NoError(t, line.Set(FieldEmployeeID, "emp1"))
	require.NoError(t, line.Set(FieldDate, "2026-10-20"))
	assert.False(t, line.IsComplete())

	require.NoError(t, line.Set(FieldTime, "10:00"))
	assert.True(t, line.IsComplete())

	assert.ErrorIs(t, line.Set(LineField("preco"), "10"), ErrUnknownLineField)
}
