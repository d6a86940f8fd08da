package db

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

var validate = validator.New()

// FileDB provides database operations over a single YAML file.
// The whole dataset is held in memory and the file is rewritten on every write.
type FileDB struct {
	path string

	mu   sync.RWMutex
	data Dataset
}

// NewFileDB opens the YAML dataset at path. A missing file is treated as an empty dataset
// and is created on the first write.
func NewFileDB(path string) (*FileDB, error) {
	fdb := &FileDB{path: path}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fdb, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if err := yaml.Unmarshal(content, &fdb.data); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	if err := validate.Struct(&fdb.data); err != nil {
		return nil, fmt.Errorf("data file validation failed: %w", err)
	}

	return fdb, nil
}

// Path returns the location of the backing file
func (f *FileDB) Path() string {
	return f.path
}

// GetEmployees returns a copy of all employee records
func (f *FileDB) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Employees), nil
}

// GetClients returns a copy of all client records
func (f *FileDB) GetClients(ctx context.Context) ([]model.Client, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Clients), nil
}

// GetAbsences returns a copy of all absence records
func (f *FileDB) GetAbsences(ctx context.Context) ([]model.Absence, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.data.Absences), nil
}

// GetJobs returns a copy of all job records ordered by date, start time and id.
// Unscheduled jobs come last.
func (f *FileDB) GetJobs(ctx context.Context) ([]model.Job, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	jobs := slices.Clone(f.data.Jobs)
	slices.SortStableFunc(jobs, compareJobs)
	return jobs, nil
}

func compareJobs(a, b model.Job) int {
	if (a.ScheduledDate == "") != (b.ScheduledDate == "") {
		if a.ScheduledDate == "" {
			return 1
		}
		return -1
	}
	return cmp.Or(
		cmp.Compare(a.ScheduledDate, b.ScheduledDate),
		cmp.Compare(a.StartTime, b.StartTime),
		cmp.Compare(a.ID, b.ID),
	)
}

// InsertJobs appends new job records. Ids must not already exist.
func (f *FileDB) InsertJobs(ctx context.Context, jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.data
	next.Jobs = slices.Clone(f.data.Jobs)
	for _, job := range jobs {
		if job.ID == "" {
			return fmt.Errorf("failed to insert job: missing id")
		}
		if indexOfJob(next.Jobs, job.ID) >= 0 {
			return fmt.Errorf("failed to insert job: duplicate id %s", job.ID)
		}
		next.Jobs = append(next.Jobs, job)
	}

	return f.commit(next)
}

// UpdateJobAssignments replaces the assignment lists of existing jobs in one write
func (f *FileDB) UpdateJobAssignments(ctx context.Context, assignments []JobAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.data
	next.Jobs = slices.Clone(f.data.Jobs)
	for _, a := range assignments {
		i := indexOfJob(next.Jobs, a.JobID)
		if i < 0 {
			return fmt.Errorf("failed to update job %s: %w", a.JobID, ErrRecordNotFound)
		}
		next.Jobs[i] = next.Jobs[i].WithAssignments(a.EmployeeIDs)
	}

	return f.commit(next)
}

// UpsertEmployees inserts or replaces employees by id
func (f *FileDB) UpsertEmployees(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.data
	next.Employees = upsert(f.data.Employees, employees, func(e model.Employee) string { return e.ID })
	return f.commit(next)
}

// UpsertClients inserts or replaces clients by id
func (f *FileDB) UpsertClients(ctx context.Context, clients []model.Client) error {
	if len(clients) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.data
	next.Clients = upsert(f.data.Clients, clients, func(c model.Client) string { return c.ID })
	return f.commit(next)
}

// commit writes the dataset to a temporary file and renames it over the original,
// then swaps it in memory. Must be called with the write lock held.
func (f *FileDB) commit(next Dataset) error {
	content, err := yaml.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary data file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary data file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	f.data = next
	return nil
}

func indexOfJob(jobs []model.Job, id string) int {
	return slices.IndexFunc(jobs, func(j model.Job) bool { return j.ID == id })
}

// upsert returns existing with each incoming record replacing the one with the same key,
// or appended when new
func upsert[T any](existing, incoming []T, key func(T) string) []T {
	result := slices.Clone(existing)
	for _, record := range incoming {
		k := key(record)
		i := slices.IndexFunc(result, func(r T) bool { return key(r) == k })
		if i >= 0 {
			result[i] = record
			continue
		}
		result = append(result, record)
	}
	return result
}
