package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"aicoder/internal/errors"
	"aicoder/internal/log"
	"aicoder/pkg/types"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Projects []types.Project `yaml:"projects"`
}

// YAMLStore keeps all projects in a single YAML file. Every write replaces
// the file atomically, so other processes (and the watcher) only ever see
// complete documents.
type YAMLStore struct {
	path  string
	mu    sync.Mutex
	now   clock
	newID func() string
}

// NewYAMLStore creates a store backed by path. The file is created on the
// first write.
func NewYAMLStore(path string) (*YAMLStore, error) {
	if path == "" {
		return nil, errors.NewInputError("store path must not be empty", "path", nil)
	}
	return &YAMLStore{path: path, now: defaultClock, newID: newID}, nil
}

func (s *YAMLStore) Path() string { return s.path }

func (s *YAMLStore) Close() error { return nil }

func (s *YAMLStore) List(ctx context.Context) ([]types.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

func (s *YAMLStore) Get(ctx context.Context, id string) (types.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return types.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Project{}, notFound(id, s.path)
}

func (s *YAMLStore) Add(ctx context.Context, title string, tags []string) (types.Project, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return types.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return types.Project{}, err
	}
	projects, err := s.load()
	if err != nil {
		return types.Project{}, err
	}

	p := types.Project{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now(),
		Tags:      cleanTags(tags),
	}
	for _, existing := range projects {
		if existing.ID == p.ID {
			return types.Project{}, errors.NewStoreError("duplicate project id", p.ID, errors.DuplicateProject, nil).WithPath(s.path)
		}
	}
	projects = append(projects, p)
	if err := s.save(projects); err != nil {
		return types.Project{}, err
	}
	log.LogWithFields(log.F("id", p.ID), log.F("store", s.path)).Debug("Project added")
	return p, nil
}

func (s *YAMLStore) Rename(ctx context.Context, id, title string) error {
	title, err := cleanTitle(title)
	if err != nil {
		return err
	}
	return s.mutate(ctx, id, func(projects []types.Project, i int) []types.Project {
		projects[i].Title = title
		return projects
	})
}

func (s *YAMLStore) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(projects []types.Project, i int) []types.Project {
		return append(projects[:i], projects[i+1:]...)
	})
}

func (s *YAMLStore) mutate(ctx context.Context, id string, fn func([]types.Project, int) []types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	projects, err := s.load()
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].ID == id {
			return s.save(fn(projects, i))
		}
	}
	return notFound(id, s.path)
}

func (s *YAMLStore) load() ([]types.Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStoreError("cannot read project store", "", errors.StoreReadFailed, err).WithPath(s.path)
	}
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewStoreError("cannot parse project store", "", errors.StoreReadFailed, err).WithPath(s.path)
	}
	sortProjects(f.Projects)
	return f.Projects, nil
}

func (s *YAMLStore) save(projects []types.Project) error {
	data, err := yaml.Marshal(yamlFile{Projects: projects})
	if err != nil {
		return errors.NewStoreError("cannot encode project store", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStoreError("cannot create store directory", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.NewStoreError("cannot write project store", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStoreError("cannot write project store", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreError("cannot write project store", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewStoreError("cannot replace project store", "", errors.StoreWriteFailed, err).WithPath(s.path)
	}
	return nil
}
