package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Get("/", ui.HandleIndex)

	r.Get("/add", ui.HandleAddForm)
	r.Post("/add", ui.HandleAddPost)

	// Deletion is a plain link on the task list.
	r.Get("/delete/{name}", ui.HandleDelete)

	r.Get("/schedule", ui.HandleSchedule)
}
