// Package todos holds the todo list: pure transformations over a slice of
// records, the JSON codec for the persisted collection, and the Store that
// keeps the list in memory and flushes it to a store.KV.
//
// The list functions never mutate their input. A changed record is a new
// value in a new slice; unchanged records are copied across. When nothing
// matches, the input slice is returned as is.
package todos

import (
	"slices"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// Sort returns a copy ordered by descending id (newest first).
func Sort(list []model.Todo) []model.Todo {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b model.Todo) int { return b.ID - a.ID })
	return out
}

// NextID is max(id)+1, or 1 for an empty list.
func NextID(list []model.Todo) int {
	hi := 0
	for _, t := range list {
		if t.ID > hi {
			hi = t.ID
		}
	}
	return hi + 1
}

// Add prepends a new open record. Blank titles leave the list unchanged.
func Add(list []model.Todo, title string) []model.Todo {
	return insert(list, NextID(list), title)
}

func insert(list []model.Todo, id int, title string) []model.Todo {
	title = strings.TrimSpace(title)
	if title == "" {
		return list
	}
	out := make([]model.Todo, 0, len(list)+1)
	out = append(out, model.Todo{ID: id, Title: title})
	return append(out, list...)
}

// Toggle flips completed on the record with id.
func Toggle(list []model.Todo, id int) []model.Todo {
	return update(list, id, func(t *model.Todo) { t.Completed = !t.Completed })
}

// Edit replaces the title of the record with id, keeping its id, completed
// flag and position. Blank titles and the title it already has leave the
// list unchanged.
func Edit(list []model.Todo, id int, title string) []model.Todo {
	title = strings.TrimSpace(title)
	if title == "" {
		return list
	}
	if i := index(list, id); i >= 0 && list[i].Title == title {
		return list
	}
	return update(list, id, func(t *model.Todo) { t.Title = title })
}

// Remove drops the record with id.
func Remove(list []model.Todo, id int) []model.Todo {
	i := index(list, id)
	if i < 0 {
		return list
	}
	out := make([]model.Todo, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// Find returns the record with id.
func Find(list []model.Todo, id int) (model.Todo, bool) {
	if i := index(list, id); i >= 0 {
		return list[i], true
	}
	return model.Todo{}, false
}

// Stats counts completed and open records.
func Stats(list []model.Todo) (done, pending int) {
	for _, t := range list {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func update(list []model.Todo, id int, fn func(*model.Todo)) []model.Todo {
	i := index(list, id)
	if i < 0 {
		return list
	}
	out := slices.Clone(list)
	fn(&out[i])
	return out
}

func index(list []model.Todo, id int) int {
	return slices.IndexFunc(list, func(t model.Todo) bool { return t.ID == id })
}
