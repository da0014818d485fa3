package startup

import (
	"context"
	"fmt"
	"log"
)

// StartupTask represents a startup task function
type StartupTask struct {
	Name string
	Task func(ctx context.Context) error
}

// Registry holds the tasks main runs before serving traffic.
type Registry struct {
	tasks []StartupTask
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a startup task to the registry
func (r *Registry) Register(name string, task func(ctx context.Context) error) {
	r.tasks = append(r.tasks, StartupTask{
		Name: name,
		Task: task,
	})
}

// RunAll executes the registered tasks in order and stops at the first failure.
func (r *Registry) RunAll(ctx context.Context) error {
	log.Printf("Running %d startup tasks...", len(r.tasks))

	for _, task := range r.tasks {
		log.Printf("Running startup task: %s", task.Name)

		if err := task.Task(ctx); err != nil {
			return fmt.Errorf("startup task '%s' failed: %w", task.Name, err)
		}

		log.Printf("Startup task '%s' completed successfully", task.Name)
	}

	log.Printf("All startup tasks completed successfully")
	return nil
}
