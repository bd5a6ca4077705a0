// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrViewNotFound  = errors.New("schema view not found")
	ErrFormNotFound  = errors.New("schema form not found")
	ErrViewDuplicate = errors.New("schema view already registered")
)

// Registry holds the declared views by name. Views are immutable once
// registered.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*ViewSchema
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*ViewSchema)}
}

// Register adds a view after linting it
func (r *Registry) Register(v *ViewSchema) error {
	if v == nil || v.Name == "" {
		return errors.New("schema view must have a name")
	}
	if problems := Lint(v); len(problems) > 0 {
		return fmt.Errorf("view %s: %w", v.Name, errors.Join(problems...))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[v.Name]; ok {
		return fmt.Errorf("%w: %s", ErrViewDuplicate, v.Name)
	}
	r.views[v.Name] = v
	return nil
}

func (r *Registry) Get(name string) (*ViewSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	return v, nil
}

// Form looks up a view's search or edit form
func (r *Registry) Form(view, form string) ([]Field, error) {
	v, err := r.Get(view)
	if err != nil {
		return nil, err
	}
	fields, ok := v.Form(form)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrFormNotFound, view, form)
	}
	return fields, nil
}

// Names returns the registered view names sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
