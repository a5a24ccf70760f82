package model

// Todo is the domain model for a todo entry.
// Records are values; the list store copies them instead of sharing.
type Todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// DefaultSeed is what a first run starts with when nothing is persisted.
func DefaultSeed() []Todo {
	return []Todo{
		{ID: 1, Title: "Read the README", Completed: true},
		{ID: 2, Title: "Add your first todo", Completed: false},
		{ID: 3, Title: "Toggle one as done", Completed: false},
		{ID: 4, Title: "Try the dark theme", Completed: false},
	}
}
