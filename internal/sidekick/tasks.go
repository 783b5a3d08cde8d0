package sidekick

import "strings"

// AddTask appends a task with the given id. The title is trimmed; an empty
// title leaves the document unchanged.
func AddTask(doc Document, id, title string) Document {
	title = strings.TrimSpace(title)
	if title == "" {
		return doc
	}
	doc.Tasks = append(doc.Tasks, Todo{ID: id, Title: title})
	return doc
}

// ToggleTask flips the done flag of the task with id.
func ToggleTask(doc Document, id string) Document {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			doc.Tasks[i].Done = !doc.Tasks[i].Done
		}
	}
	return doc
}

// RemoveTask drops the task with id.
func RemoveTask(doc Document, id string) Document {
	doc.Tasks = filter(doc.Tasks, func(t Todo) bool { return t.ID != id })
	return doc
}

// FindTask returns the task whose id is id or, failing that, the only task
// whose id starts with id. An empty id matches nothing.
func FindTask(doc Document, id string) (Todo, bool) {
	if id = strings.TrimSpace(id); id == "" {
		return Todo{}, false
	}
	var match Todo
	n := 0
	for _, t := range doc.Tasks {
		if t.ID == id {
			return t, true
		}
		if strings.HasPrefix(t.ID, id) {
			match = t
			n++
		}
	}
	return match, n == 1
}

// filter returns the elements of s for which keep is true. The result is
// never nil.
func filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
