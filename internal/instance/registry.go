package instance

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/ini.v1"

	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/logging"
)

func init() {
	// Serialize keys as KEY=value, matching the .env format the compose
	// project consumes.
	ini.PrettyFormat = false
}

// Registry is the durable store of instance records. Implementations must
// re-read storage on every List so concurrent external changes are visible.
type Registry interface {
	// Create persists a new record. Fails with DuplicateName if the name
	// is taken and PortConflict if either port is already recorded.
	Create(rec *Record) error

	// List returns all intact records ordered by name. Corrupt records
	// are skipped with a warning, never an error.
	List() ([]*Record, error)

	// Get returns the record for name, or a NotFound error.
	Get(name string) (*Record, error)

	// Delete removes the record. Teardown of the instance's containers
	// is the lifecycle controller's job and must happen first.
	Delete(name string) error

	// Dir returns the instance's directory (the compose project
	// directory), or "" for registries with no filesystem backing.
	Dir(name string) (string, error)
}

// PortRecorder is implemented by registries that can report ports held
// by entries List would skip as corrupt. A half-written record may still
// carry port keys; those ports stay off-limits until the record is
// repaired or removed.
type PortRecorder interface {
	RecordedPorts() (map[int]bool, error)
}

// UsedPorts collects every port recorded in the registry, including
// ports held by corrupt records where the registry can report them.
func UsedPorts(reg Registry) (map[int]bool, error) {
	if pr, ok := reg.(PortRecorder); ok {
		return pr.RecordedPorts()
	}

	records, err := reg.List()
	if err != nil {
		return nil, err
	}

	used := make(map[int]bool, len(records)*2)
	for _, rec := range records {
		used[rec.AppPort] = true
		used[rec.DBPort] = true
	}
	return used, nil
}

// FSRegistry stores one directory per instance under a registry root.
type FSRegistry struct {
	root          string
	appImage      string
	postgresImage string
}

// NewFSRegistry creates a filesystem-backed registry rooted at root.
func NewFSRegistry(root, appImage, postgresImage string) *FSRegistry {
	return &FSRegistry{
		root:          root,
		appImage:      appImage,
		postgresImage: postgresImage,
	}
}

// Dir returns the directory for an instance.
func (r *FSRegistry) Dir(name string) (string, error) {
	return config.InstanceDir(r.root, name)
}

// Create persists a new record and its compose file.
func (r *FSRegistry) Create(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return errors.ValidationError(err.Error())
	}

	dir, err := r.Dir(rec.Name)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	if _, err := os.Stat(dir); err == nil {
		return errors.DuplicateName(rec.Name)
	}

	// Defense in depth: the allocator already probed these ports, but a
	// record written by another invocation between probe and create must
	// still be rejected.
	used, err := UsedPorts(r)
	if err != nil {
		return err
	}
	if used[rec.AppPort] {
		return errors.PortConflict(rec.AppPort)
	}
	if used[rec.DBPort] {
		return errors.PortConflict(rec.DBPort)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create instance directory: %w", err)
	}

	if err := writeEnvFile(dir, rec); err != nil {
		return err
	}

	if err := WriteComposeFile(dir, rec, r.appImage, r.postgresImage); err != nil {
		return err
	}

	logging.Debug("created instance record", "name", rec.Name, "appPort", rec.AppPort, "dbPort", rec.DBPort)
	return nil
}

// List returns all intact records ordered by name. os.ReadDir returns
// entries sorted by filename, which gives the registry ordering.
func (r *FSRegistry) List() ([]*Record, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var records []*Record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		rec, err := r.load(entry.Name())
		if err != nil {
			logging.Warn("skipping corrupt instance record", "name", entry.Name(), "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Get returns the record for name.
func (r *FSRegistry) Get(name string) (*Record, error) {
	dir, err := r.Dir(name)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	if _, err := os.Stat(filepath.Join(dir, EnvFileName)); os.IsNotExist(err) {
		return nil, errors.NotFound(name)
	}

	return r.load(name)
}

// Delete removes the instance's directory and everything in it.
func (r *FSRegistry) Delete(name string) error {
	dir, err := r.Dir(name)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return errors.NotFound(name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove instance directory: %w", err)
	}

	logging.Debug("deleted instance record", "name", name)
	return nil
}

// RecordedPorts scans every instance directory's env file for port keys,
// tolerating records load would reject. Reassigning a half-written
// record's port would wire two instances to the same port, so any value
// that parses counts as taken.
func (r *FSRegistry) RecordedPorts() (map[int]bool, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	used := make(map[int]bool, len(entries)*2)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		f, err := ini.Load(filepath.Join(r.root, entry.Name(), EnvFileName))
		if err != nil {
			continue
		}

		sec := f.Section("")
		for _, key := range []string{KeyAppPort, KeyDBPort} {
			if port, err := sec.Key(key).Int(); err == nil && port > 0 {
				used[port] = true
			}
		}
	}

	return used, nil
}

// load reads and validates a record from its env file.
func (r *FSRegistry) load(name string) (*Record, error) {
	dir, err := r.Dir(name)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	f, err := ini.Load(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, errors.CorruptRecord(name, fmt.Sprintf("unreadable env file: %v", err))
	}

	sec := f.Section("")
	for _, key := range requiredKeys {
		if !sec.HasKey(key) || sec.Key(key).String() == "" {
			return nil, errors.CorruptRecord(name, "missing "+key)
		}
	}

	appPort, err := sec.Key(KeyAppPort).Int()
	if err != nil {
		return nil, errors.CorruptRecord(name, "malformed "+KeyAppPort)
	}

	dbPort, err := sec.Key(KeyDBPort).Int()
	if err != nil {
		return nil, errors.CorruptRecord(name, "malformed "+KeyDBPort)
	}

	createdAt, err := time.Parse(time.RFC3339, sec.Key(KeyCreatedDate).String())
	if err != nil {
		return nil, errors.CorruptRecord(name, "malformed "+KeyCreatedDate)
	}

	return &Record{
		Name:         name,
		AppPort:      appPort,
		DBPort:       dbPort,
		CompanyName:  sec.Key(KeyCompanyName).String(),
		AdminEmail:   sec.Key(KeyAdminEmail).String(),
		DatabaseName: sec.Key(KeyDatabaseName).String(),
		CreatedAt:    createdAt,
		Secrets: Secrets{
			SessionSecret:    sec.Key(KeySessionSecret).String(),
			EncryptionKey:    sec.Key(KeyEncryptionKey).String(),
			PostgresPassword: sec.Key(KeyPostgresPassword).String(),
		},
	}, nil
}

// writeEnvFile serializes the record to instance.env. The file carries
// credentials, so it is written 0600.
func writeEnvFile(dir string, rec *Record) error {
	f := ini.Empty()
	sec := f.Section("")

	sec.Key(KeyAppPort).SetValue(strconv.Itoa(rec.AppPort))
	sec.Key(KeyDBPort).SetValue(strconv.Itoa(rec.DBPort))
	sec.Key(KeyCompanyName).SetValue(rec.CompanyName)
	sec.Key(KeyAdminEmail).SetValue(rec.AdminEmail)
	sec.Key(KeyDatabaseName).SetValue(rec.DatabaseName)
	sec.Key(KeyCreatedDate).SetValue(rec.CreatedAt.Format(time.RFC3339))
	sec.Key(KeySessionSecret).SetValue(rec.Secrets.SessionSecret)
	sec.Key(KeyEncryptionKey).SetValue(rec.Secrets.EncryptionKey)
	sec.Key(KeyPostgresPassword).SetValue(rec.Secrets.PostgresPassword)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, EnvFileName), buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	return nil
}
