package instance

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const (
	EnvFileName     = "instance.env"
	ComposeFileName = "docker-compose.yml"
)

// composeTemplate is the per-instance compose project. Ports bind on all
// interfaces; the app reaches postgres over the project's private network.
// Data lives in named volumes so containers stay disposable. Both services
// load instance.env directly so credentials never depend on compose-time
// variable interpolation.
var composeTemplate = template.Must(template.New("compose").Parse(`name: {{.Project}}

services:
  app:
    image: {{.AppImage}}
    container_name: {{.Project}}-app
    restart: unless-stopped
    env_file:
      - instance.env
    ports:
      - "{{.AppPort}}:3000"
    volumes:
      - appdata:/app/data
    depends_on:
      - db

  db:
    image: {{.PostgresImage}}
    container_name: {{.Project}}-db
    restart: unless-stopped
    env_file:
      - instance.env
    environment:
      POSTGRES_DB: {{.DatabaseName}}
      POSTGRES_USER: parlor
    ports:
      - "{{.DBPort}}:5432"
    volumes:
      - pgdata:/var/lib/postgresql/data

volumes:
  appdata:
  pgdata:
`))

type composeParams struct {
	Project       string
	AppImage      string
	PostgresImage string
	AppPort       int
	DBPort        int
	DatabaseName  string
}

// RenderCompose produces the docker-compose.yml contents for a record.
func RenderCompose(rec *Record, appImage, postgresImage string) ([]byte, error) {
	var buf bytes.Buffer
	err := composeTemplate.Execute(&buf, composeParams{
		Project:       rec.Project(),
		AppImage:      appImage,
		PostgresImage: postgresImage,
		AppPort:       rec.AppPort,
		DBPort:        rec.DBPort,
		DatabaseName:  rec.DatabaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render compose file: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteComposeFile renders and writes the compose file into dir.
func WriteComposeFile(dir string, rec *Record, appImage, postgresImage string) error {
	data, err := RenderCompose(rec, appImage, postgresImage)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, ComposeFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write compose file: %w", err)
	}

	return nil
}
