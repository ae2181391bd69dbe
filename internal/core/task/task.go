// Package task defines the task domain model and the in-memory store
// that owns the authoritative task list.
package task

import "errors"

// ErrEmptyText is returned when a create or edit is attempted with text
// that is empty after trimming.
var ErrEmptyText = errors.New("task text is empty")

// IDLength is the length of generated task identifiers.
const IDLength = 8

// Task is a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
