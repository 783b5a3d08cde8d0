package sidekick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveListItems_SkipsRemovedItems(t *testing.T) {
	inventory := []InventoryItem{
		{ID: 1, Name: "Guitare", Quantity: 1, Condition: ConditionGood},
		{ID: 2, Name: "Ampli", Quantity: 1, Condition: ConditionFair},
		{ID: 3, Name: "Câbles", Quantity: 6, Condition: ConditionNew},
	}
	list := MaterialList{ID: 1, Name: "Concert", ItemIDs: []int64{3, 2, 1}}

	inventory = RemoveInventoryItem(inventory, 2)
	got := ResolveListItems(list, inventory)

	assert.Equal(t, []int64{3, 2, 1}, list.ItemIDs)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "Câbles", got[0].Name)
		assert.Equal(t, "Guitare", got[1].Name)
	}
}

func TestMaterialForRepresentation(t *testing.T) {
	lists := []MaterialList{{ID: 1, Name: "Acoustique"}, {ID: 2, Name: "Full band"}}
	byRep := map[int64]int64{10: 2, 11: 99}

	got, ok := MaterialForRepresentation(byRep, lists, 10)
	assert.True(t, ok)
	assert.Equal(t, "Full band", got.Name)

	_, ok = MaterialForRepresentation(byRep, lists, 11)
	assert.False(t, ok, "assignment to a deleted list")

	_, ok = MaterialForRepresentation(byRep, lists, 12)
	assert.False(t, ok)
}

func TestAddInventoryItem(t *testing.T) {
	inv, it := AddInventoryItem([]InventoryItem{{ID: 3, Name: "Micro"}}, InventoryItem{Quantity: -2})

	assert.Equal(t, InventoryItem{ID: 4, Name: "Sans nom", Quantity: 0, Condition: ConditionGood}, it)
	assert.Len(t, inv, 2)
}

func TestParseCondition(t *testing.T) {
	c, err := ParseCondition("neuf")
	assert.NoError(t, err)
	assert.Equal(t, ConditionNew, c)

	_, err = ParseCondition("cassé")
	assert.Error(t, err)
}

func TestMaterialLists(t *testing.T) {
	_, _, err := AddMaterialList(nil, MaterialList{Name: ""})
	assert.ErrorIs(t, err, ErrRequired)

	lists, l, err := AddMaterialList(nil, MaterialList{Name: "Solo", Description: " guitare seule "})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, "guitare seule", l.Description)
	assert.NotNil(t, l.ItemIDs)

	byRep := AssignMaterial(nil, 5, l.ID)
	lists = RemoveMaterialList(lists, l.ID)
	_, ok := MaterialForRepresentation(byRep, lists, 5)
	assert.False(t, ok)
}
