package store

import (
	"encoding/json"
	"os"

	"github.com/kildhq/kild/internal/kilderr"
)

// LoadProjects reads the single projects.json file. A missing file
// yields an empty registry, not an error — the first `kild create`
// in a fresh base dir has nothing to load yet.
func (s *Store) LoadProjects() (ProjectsData, error) {
	data, err := os.ReadFile(s.projectsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return ProjectsData{}, nil
		}
		return ProjectsData{}, err
	}
	var pd ProjectsData
	if err := json.Unmarshal(data, &pd); err != nil {
		return ProjectsData{}, kilderr.Newf(kilderr.InvalidConfiguration, err, "projects file is corrupted")
	}
	return pd, nil
}

// SaveProjects atomically writes the project registry.
func (s *Store) SaveProjects(pd ProjectsData) error {
	data, err := json.MarshalIndent(pd, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.projectsPath(), data, 0644)
}

// AddProject appends a project, rejecting a duplicate id.
func (s *Store) AddProject(p Project) error {
	pd, err := s.LoadProjects()
	if err != nil {
		return err
	}
	for _, existing := range pd.Projects {
		if existing.ID == p.ID {
			return kilderr.ErrProjectAlreadyExists(p.Path)
		}
	}
	pd.Projects = append(pd.Projects, p)
	return s.SaveProjects(pd)
}

// RemoveProject deletes a project by path, clearing Active if it was
// the one selected.
func (s *Store) RemoveProject(path string) error {
	pd, err := s.LoadProjects()
	if err != nil {
		return err
	}
	out := pd.Projects[:0]
	found := false
	for _, p := range pd.Projects {
		if p.Path == path {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return kilderr.ErrProjectNotFound(path)
	}
	pd.Projects = out
	if pd.Active == path {
		pd.Active = ""
	}
	return s.SaveProjects(pd)
}

// SetActiveProject records the active project selection, or clears it
// when path is empty.
func (s *Store) SetActiveProject(path string) error {
	pd, err := s.LoadProjects()
	if err != nil {
		return err
	}
	pd.Active = path
	return s.SaveProjects(pd)
}
