package ui

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format(model.DeadlineLayout)
	},
	"hours": func(d time.Duration) string {
		h := d.Hours()
		if h == float64(int64(h)) {
			return fmt.Sprintf("%dh", int64(h))
		}
		return d.Round(time.Minute).String()
	},
	"join": func(s []string) string {
		if len(s) == 0 {
			return "-"
		}
		return strings.Join(s, ", ")
	},
	"statusDotColor": func(status model.TaskStatus) string {
		switch status {
		case model.TaskStatusPending:
			return "bg-gray-300"
		case model.TaskStatusScheduled:
			return "bg-yellow-400"
		case model.TaskStatusRunning:
			return "bg-blue-500 animate-pulse"
		case model.TaskStatusCompleted:
			return "bg-green-500"
		default:
			return "bg-gray-400"
		}
	},
	"overdue": func(t model.Task) bool {
		return t.Deadline.Before(time.Now())
	},
	"add": func(a, b int) int {
		return a + b
	},
	"pathEscape": url.PathEscape,
}

// renderTemplate renders the named content template inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(templates["layout"])
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-5xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex h-16">
                <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">taskplan</a>
                <div class="ml-6 flex space-x-8">
                    <a href="/" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Tasks</a>
                    <a href="/add" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Add Task</a>
                    <a href="/schedule" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Schedule</a>
                </div>
            </div>
        </div>
    </nav>

    <main class="max-w-5xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"index": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center mb-6">
        <h1 class="text-2xl font-semibold text-gray-900">Tasks</h1>
        <a href="/add" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Add Task</a>
    </div>
    {{if .Tasks}}
    <div class="bg-white shadow overflow-hidden rounded-lg">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Name</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Priority</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Deadline</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Duration</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Dependencies</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="bg-white divide-y divide-gray-200">
                {{range .Tasks}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.Name}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Priority}}</td>
                    <td class="px-6 py-4 text-sm {{if overdue .}}text-red-600{{else}}text-gray-500{{end}}">{{formatTime .Deadline}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{hours .Duration}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{join .Dependencies}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">
                        <span class="inline-block w-2 h-2 rounded-full {{statusDotColor .Status}}"></span> {{.Status}}
                    </td>
                    <td class="px-6 py-4 text-right text-sm">
                        <a href="/delete/{{pathEscape .Name}}" class="text-red-600 hover:text-red-900">Delete</a>
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{else}}
    <p class="text-sm text-gray-500">No tasks yet.</p>
    {{end}}
</div>
{{end}}`,

	"add": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-lg">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Add Task</h1>
    {{if .Error}}
    <div class="rounded-md bg-red-50 p-4 mb-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}
    <form action="/add" method="POST" class="space-y-4">
        <div>
            <label for="name" class="block text-sm font-medium text-gray-700">Name</label>
            <input id="name" name="name" type="text" required value="{{.Form.Name}}" class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2 text-sm">
        </div>
        <div>
            <label for="priority" class="block text-sm font-medium text-gray-700">Priority (lower runs first)</label>
            <input id="priority" name="priority" type="number" required value="{{.Form.Priority}}" class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2 text-sm">
        </div>
        <div>
            <label for="deadline" class="block text-sm font-medium text-gray-700">Deadline (YYYY-MM-DD HH:MM)</label>
            <input id="deadline" name="deadline" type="text" required placeholder="2026-01-31 17:00" value="{{.Form.Deadline}}" class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2 text-sm">
        </div>
        <div>
            <label for="duration" class="block text-sm font-medium text-gray-700">Duration (hours)</label>
            <input id="duration" name="duration" type="number" min="0" required value="{{.Form.Duration}}" class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2 text-sm">
        </div>
        <div>
            <label for="dependencies" class="block text-sm font-medium text-gray-700">Dependencies (comma-separated)</label>
            <input id="dependencies" name="dependencies" type="text" value="{{.Form.Dependencies}}" class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2 text-sm">
        </div>
        <button type="submit" class="px-4 py-2 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700">Add Task</button>
    </form>
</div>
{{end}}`,

	"schedule": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900">Schedule</h1>
    <p class="mt-1 mb-6 text-sm text-gray-500">{{formatTime .Plan.Start}} to {{formatTime .Plan.End}}, one task at a time.</p>
    {{if .Plan.Entries}}
    <div class="bg-white shadow overflow-hidden rounded-lg">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">#</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Start</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">End</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Task</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Priority</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Deadline</th>
                </tr>
            </thead>
            <tbody class="bg-white divide-y divide-gray-200">
                {{range $i, $e := .Plan.Entries}}
                <tr>
                    <td class="px-6 py-4 text-sm text-gray-500">{{add $i 1}}</td>
                    <td class="px-6 py-4 text-sm text-gray-900">{{formatTime $e.Start}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{formatTime $e.End}}</td>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{$e.Task.Name}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{$e.Task.Priority}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{formatTime $e.Task.Deadline}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{else}}
    <p class="text-sm text-gray-500">Nothing can be scheduled.</p>
    {{end}}
    {{if .Plan.Skipped}}
    <div class="mt-6 rounded-md bg-yellow-50 p-4">
        <div class="text-sm text-yellow-800">Skipped, deadline passed: {{join .Plan.Skipped}}</div>
    </div>
    {{end}}
</div>
{{end}}`,

	"cycle": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="rounded-md bg-red-50 p-4">
        <p class="text-sm font-medium text-red-800">{{.Message}}</p>
        <p class="mt-1 text-sm text-red-700">{{.Detail}}</p>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="rounded-md bg-red-50 p-4">
        <div class="text-sm text-red-700">{{.Message}}</div>
    </div>
    <a href="/" class="mt-4 inline-block text-sm text-indigo-600 hover:text-indigo-900">Back to tasks</a>
</div>
{{end}}`,
}
