package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/pkg/model"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	tasks := s.sched.List()
	respondList(w, reqID, tasks, len(tasks))
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		})
		return
	}

	// Add and read back under one lock.
	var task model.Task
	err := s.sched.Do(func(sc *scheduler.Scheduler) error {
		if err := sc.Add(req.Name, req.Priority, req.Deadline, req.DurationHours, req.Dependencies); err != nil {
			return err
		}
		task, _ = sc.Get(req.Name)
		return nil
	})
	if err != nil {
		s.logger.Debug("add task rejected", "task", req.Name, "error", err)
		respondSchedulerError(w, reqID, err)
		return
	}

	s.logger.Info("task stored", "task", task.Name, "priority", task.Priority, "deadline", task.Deadline)
	respondCreated(w, reqID, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	name := chi.URLParam(r, "name")

	task, ok := s.sched.Get(name)
	if !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("task", name))
		return
	}
	respondOK(w, reqID, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	name := chi.URLParam(r, "name")

	s.sched.Delete(name)
	respondOK(w, reqID, map[string]any{"name": name, "deleted": true})
}
