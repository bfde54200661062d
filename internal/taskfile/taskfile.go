// Package taskfile reads task sets from YAML files:
//
//	tasks:
//	  - name: build
//	    priority: 1
//	    deadline: "2026-10-18 12:00"
//	    duration: 2        # hours
//	    dependencies: [fetch]
package taskfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/pkg/model"
)

// File is a parsed task file.
type File struct {
	Tasks []Entry `yaml:"tasks"`
}

// Entry is one task as written in a file. Duration is in whole hours.
type Entry struct {
	Name         string   `yaml:"name"`
	Priority     int      `yaml:"priority"`
	Deadline     string   `yaml:"deadline"`
	Duration     int      `yaml:"duration"`
	Dependencies []string `yaml:"dependencies"`
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes task file YAML. Unknown keys are rejected so typos such
// as "dependecies" do not silently drop data.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return &f, nil
}

// Build validates every entry and returns the tasks in file order.
// Deadlines are read in loc.
func (f *File) Build(loc *time.Location) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(f.Tasks))
	for i, e := range f.Tasks {
		t, err := model.NewTask(e.Name, e.Priority, e.Deadline, e.Duration, e.Dependencies, loc)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d] %q: %w", i, e.Name, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Apply adds every task in f to s in file order. Nothing is added unless
// all entries are valid. Later entries overwrite earlier ones with the
// same name, as Scheduler.Add does.
func (f *File) Apply(s *scheduler.Scheduler) error {
	tasks, err := f.Build(s.Location())
	if err != nil {
		return err
	}
	for _, t := range tasks {
		s.Put(t)
	}
	return nil
}
