package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Step is one named block of SQL. A step may hold several statements.
type Step struct {
	Name string
	SQL  string
}

// Plan is an ordered sequence of steps. Every step must be safe to re-run.
type Plan struct {
	Name  string
	Steps []Step
	// Atomic runs all steps inside a single transaction.
	Atomic bool
}

// LoadPlan builds a plan from the *.sql files directly under root, ordered by file name.
// Each file becomes one step named after the file without its extension.
func LoadPlan(name string, fsys fs.FS, root string) (Plan, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return Plan{}, fmt.Errorf("read %s steps: %w", name, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	plan := Plan{Name: name}
	for _, file := range files {
		content, err := fs.ReadFile(fsys, path.Join(root, file))
		if err != nil {
			return Plan{}, fmt.Errorf("read step %s: %w", file, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		plan.Steps = append(plan.Steps, Step{
			Name: strings.TrimSuffix(file, ".sql"),
			SQL:  string(content),
		})
	}

	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Then returns a plan running p's steps followed by next's, under p's name.
func (p Plan) Then(next Plan) Plan {
	steps := make([]Step, 0, len(p.Steps)+len(next.Steps))
	steps = append(steps, p.Steps...)
	steps = append(steps, next.Steps...)
	return Plan{Name: p.Name, Steps: steps, Atomic: p.Atomic}
}

// Validate rejects plans the runner cannot execute unambiguously.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("plan name is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan %s has no steps", p.Name)
	}
	seen := make(map[string]struct{}, len(p.Steps))
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Name) == "" {
			return fmt.Errorf("plan %s: step %d has no name", p.Name, i+1)
		}
		if _, dup := seen[step.Name]; dup {
			return fmt.Errorf("plan %s: duplicate step %s", p.Name, step.Name)
		}
		seen[step.Name] = struct{}{}
		if strings.TrimSpace(step.SQL) == "" {
			return fmt.Errorf("plan %s: step %s has no SQL", p.Name, step.Name)
		}
	}
	return nil
}

// StepNames lists the step names in execution order.
func (p Plan) StepNames() []string {
	names := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		names[i] = step.Name
	}
	return names
}
