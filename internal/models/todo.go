package models

// Todo is a single record of the remote todo list API.
type Todo struct {
	ID        int    `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// TodoPage is the envelope returned by the list endpoint.
type TodoPage struct {
	Todos []Todo `json:"todos"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// NewTodo is the request body for creating a record.
type NewTodo struct {
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// TodoUpdate is the request body for updating a record.
type TodoUpdate struct {
	Completed bool   `json:"completed"`
	Todo      string `json:"todo"`
}

// DeletedTodo is the acknowledgement returned by the delete endpoint.
type DeletedTodo struct {
	Todo
	IsDeleted bool   `json:"isDeleted"`
	DeletedOn string `json:"deletedOn"`
}
