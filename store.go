package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"changepilot/export"
)

// ErrProjectNotFound is returned when a project id has no row.
var ErrProjectNotFound = errors.New("project not found")

// Project is a stored project: its name, chosen template and the generated
// content graph kept verbatim as JSON. The store is deliberately thin;
// project management lives elsewhere in the platform, exports only need to
// fetch content by id.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TemplateID int       `json:"templateId"`
	Content    []byte    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToContent materializes the stored row as the engine's input graph.
func (p *Project) ToContent() (*export.ProjectContent, error) {
	content := &export.ProjectContent{
		Name:       p.Name,
		TemplateID: p.TemplateID,
	}
	if len(p.Content) > 0 {
		var generated export.GeneratedContent
		if err := json.Unmarshal(p.Content, &generated); err != nil {
			return nil, fmt.Errorf("decode stored content: %w", err)
		}
		content.GeneratedContent = &generated
	}
	return content, nil
}

// ProjectStore persists projects in sqlite. Path ":memory:" keeps the store
// in process memory (tests and local runs).
type ProjectStore struct {
	db *sql.DB
}

func OpenProjectStore(path string) (*ProjectStore, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		template_id INTEGER NOT NULL DEFAULT 1,
		content     TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ProjectStore{db: db}, nil
}

func (s *ProjectStore) Close() error {
	return s.db.Close()
}

// Create stores a new project and returns it with a generated id.
func (s *ProjectStore) Create(name string, templateID int, content json.RawMessage) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		ID:         uuid.NewString(),
		Name:       name,
		TemplateID: templateID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, template_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.TemplateID, string(project.Content), project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

// Get fetches a project by id.
func (s *ProjectStore) Get(id string) (*Project, error) {
	row := s.db.QueryRow(
		`SELECT id, name, template_id, content, created_at, updated_at FROM projects WHERE id = ?`, id,
	)

	var project Project
	var content string
	err := row.Scan(&project.ID, &project.Name, &project.TemplateID, &content, &project.CreatedAt, &project.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	project.Content = []byte(content)
	return &project, nil
}

// UpdateContent replaces a project's generated content.
func (s *ProjectStore) UpdateContent(id string, content json.RawMessage) error {
	result, err := s.db.Exec(
		`UPDATE projects SET content = ?, updated_at = ? WHERE id = ?`,
		string(content), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
