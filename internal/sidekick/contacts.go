package sidekick

import "strings"

// AddContact appends c with the next free id. The name is required.
func AddContact(contacts []ContactRecord, c ContactRecord) ([]ContactRecord, ContactRecord, error) {
	name, err := required("name", c.Name)
	if err != nil {
		return contacts, ContactRecord{}, err
	}
	c.Name = name
	c.Role = strings.TrimSpace(c.Role)
	c.City = strings.TrimSpace(c.City)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Notes = strings.TrimSpace(c.Notes)
	c.ID = NextID(contacts, func(x ContactRecord) int64 { return x.ID })
	return append(append([]ContactRecord{}, contacts...), c), c, nil
}

// RemoveContact drops the contact with id.
func RemoveContact(contacts []ContactRecord, id int64) []ContactRecord {
	return filter(contacts, func(c ContactRecord) bool { return c.ID != id })
}
