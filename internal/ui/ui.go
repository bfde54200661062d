package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/pkg/model"
)

// CycleMessage is shown instead of a plan when dependencies form a cycle.
const CycleMessage = "Task dependencies contain a cycle. Cannot schedule tasks."

// UI handles the web user interface.
type UI struct {
	sched  *scheduler.Shared
	logger *slog.Logger
}

// New creates a new UI handler.
func New(sched *scheduler.Shared, logger *slog.Logger) *UI {
	return &UI{
		sched:  sched,
		logger: logger.With("component", "ui"),
	}
}

// HandleIndex renders the task list ordered by priority, then deadline.
func (ui *UI) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ui.render(w, http.StatusOK, "index", map[string]any{
		"Title": "Tasks - taskplan",
		"Tasks": ui.sched.List(),
	})
}

// HandleAddForm renders the empty add-task form.
func (ui *UI) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	ui.render(w, http.StatusOK, "add", map[string]any{
		"Title": "Add Task - taskplan",
		"Form":  addForm{},
	})
}

// addForm carries the raw form values back into the page on error.
type addForm struct {
	Name         string
	Priority     string
	Deadline     string
	Duration     string
	Dependencies string
}

// HandleAddPost parses the add-task form and stores the task.
func (ui *UI) HandleAddPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.renderAddError(w, addForm{}, "Invalid request")
		return
	}

	form := addForm{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Priority:     strings.TrimSpace(r.FormValue("priority")),
		Deadline:     normalizeDeadline(r.FormValue("deadline")),
		Duration:     strings.TrimSpace(r.FormValue("duration")),
		Dependencies: r.FormValue("dependencies"),
	}

	priority, err := strconv.Atoi(form.Priority)
	if err != nil {
		ui.renderAddError(w, form, "Priority must be a whole number")
		return
	}
	duration, err := strconv.Atoi(form.Duration)
	if err != nil {
		ui.renderAddError(w, form, "Duration must be a whole number of hours")
		return
	}

	err = ui.sched.Add(form.Name, priority, form.Deadline, duration, splitDependencies(form.Dependencies))
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			ui.renderAddError(w, form, ve.Error())
			return
		}
		ui.renderError(w, "Could not add task", err)
		return
	}

	ui.logger.Info("task stored", "task", form.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete removes a task and returns to the list. Unknown names are
// ignored.
func (ui *UI) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ui.sched.Delete(name)
	ui.logger.Info("task deleted", "task", name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSchedule renders the computed plan, or CycleMessage.
func (ui *UI) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	plan, err := ui.sched.Plan()
	if err != nil {
		if errors.Is(err, model.ErrCycle) {
			ui.render(w, http.StatusConflict, "cycle", map[string]any{
				"Title":   "Schedule - taskplan",
				"Message": CycleMessage,
				"Detail":  err.Error(),
			})
			return
		}
		ui.renderError(w, "Could not compute schedule", err)
		return
	}

	ui.render(w, http.StatusOK, "schedule", map[string]any{
		"Title": "Schedule - taskplan",
		"Plan":  plan,
	})
}

// splitDependencies splits a comma-separated list, dropping blanks.
func splitDependencies(raw string) []string {
	var deps []string
	for _, dep := range strings.Split(raw, ",") {
		if dep = strings.TrimSpace(dep); dep != "" {
			deps = append(deps, dep)
		}
	}
	return deps
}

// normalizeDeadline accepts both "YYYY-MM-DD HH:MM" and the
// "YYYY-MM-DDTHH:MM" value browsers send for datetime-local inputs.
func normalizeDeadline(raw string) string {
	return strings.Replace(strings.TrimSpace(raw), "T", " ", 1)
}

func (ui *UI) renderAddError(w http.ResponseWriter, form addForm, msg string) {
	ui.render(w, http.StatusBadRequest, "add", map[string]any{
		"Title": "Add Task - taskplan",
		"Form":  form,
		"Error": msg,
	})
}

func (ui *UI) render(w http.ResponseWriter, status int, template string, data map[string]any) {
	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "error", map[string]any{
		"Title":   "Error - taskplan",
		"Message": message,
	})
}
