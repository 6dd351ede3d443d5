package models

import "time"

// Task is a to-do item owned by a user. UserID is a reference only; deleting
// either side leaves the other in place.
type Task struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"content"`
	Status    bool      `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type UpdateTaskRequest struct {
	ID     string `json:"id"`
	Status bool   `json:"status"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type StatusResponse struct {
	Status bool `json:"status"`
}

// TaskPage is one page of a user's tasks.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// WeatherRequest is the body of POST /weatherMe
type WeatherRequest struct {
	City string `json:"city"`
}

type WeatherResponse struct {
	City string  `json:"city"`
	Temp float64 `json:"temp"`
}
