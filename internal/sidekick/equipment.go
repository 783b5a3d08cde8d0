package sidekick

import (
	"fmt"
	"strings"
)

// ResolveListItems returns the inventory items a material list selects, in
// list order. Ids of items no longer in the inventory are skipped.
func ResolveListItems(list MaterialList, inventory []InventoryItem) []InventoryItem {
	byID := make(map[int64]InventoryItem, len(inventory))
	for _, it := range inventory {
		byID[it.ID] = it
	}
	out := make([]InventoryItem, 0, len(list.ItemIDs))
	for _, id := range list.ItemIDs {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// RemoveInventoryItem drops the item with id from the inventory. Lists keep
// the id; ResolveListItems skips it.
func RemoveInventoryItem(inventory []InventoryItem, id int64) []InventoryItem {
	return filter(inventory, func(it InventoryItem) bool { return it.ID != id })
}

// MaterialForRepresentation returns the material list assigned to a
// representation, if it still exists.
func MaterialForRepresentation(byDate map[int64]int64, lists []MaterialList, representationID int64) (MaterialList, bool) {
	listID, ok := byDate[representationID]
	if !ok {
		return MaterialList{}, false
	}
	for _, l := range lists {
		if l.ID == listID {
			return l, true
		}
	}
	return MaterialList{}, false
}

// AddInventoryItem appends it with the next free id. An unnamed item is
// "Sans nom", a negative quantity becomes zero and the condition defaults
// to good.
func AddInventoryItem(inventory []InventoryItem, it InventoryItem) ([]InventoryItem, InventoryItem) {
	if it.Name = strings.TrimSpace(it.Name); it.Name == "" {
		it.Name = "Sans nom"
	}
	it.Quantity = max(it.Quantity, 0)
	if it.Condition == "" {
		it.Condition = ConditionGood
	}
	it.Comment = strings.TrimSpace(it.Comment)
	it.ID = NextID(inventory, func(x InventoryItem) int64 { return x.ID })
	return append(append([]InventoryItem{}, inventory...), it), it
}

// ParseCondition validates s as an inventory condition.
func ParseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)
	for _, c := range Conditions {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Conditions lists every condition from worst to best.
var Conditions = []Condition{ConditionToRepair, ConditionFair, ConditionGood, ConditionNew}

// AddMaterialList appends l with the next free id. The name is required.
func AddMaterialList(lists []MaterialList, l MaterialList) ([]MaterialList, MaterialList, error) {
	name, err := required("name", l.Name)
	if err != nil {
		return lists, MaterialList{}, err
	}
	l.Name = name
	l.Description = strings.TrimSpace(l.Description)
	if l.ItemIDs == nil {
		l.ItemIDs = []int64{}
	}
	l.ID = NextID(lists, func(x MaterialList) int64 { return x.ID })
	return append(append([]MaterialList{}, lists...), l), l, nil
}

// RemoveMaterialList drops the list with id. Assignments to it are left in
// place; MaterialForRepresentation ignores them.
func RemoveMaterialList(lists []MaterialList, id int64) []MaterialList {
	return filter(lists, func(l MaterialList) bool { return l.ID != id })
}
