package instance

import (
	"fmt"
	"time"

	"github.com/openparlor/parlor-ctl/internal/config"
)

// Env file keys. These form the on-disk contract with the compose project;
// renaming one is a breaking change for existing registries.
const (
	KeyAppPort          = "APP_PORT"
	KeyDBPort           = "DB_PORT"
	KeyCompanyName      = "COMPANY_NAME"
	KeyAdminEmail       = "ADMIN_EMAIL"
	KeyDatabaseName     = "POSTGRES_DB"
	KeyCreatedDate      = "CREATED_DATE"
	KeySessionSecret    = "SESSION_SECRET"
	KeyEncryptionKey    = "ENCRYPTION_KEY"
	KeyPostgresPassword = "POSTGRES_PASSWORD"
)

// requiredKeys are the keys a record must carry to be considered intact.
var requiredKeys = []string{
	KeyAppPort,
	KeyDBPort,
	KeyCompanyName,
	KeyAdminEmail,
	KeyDatabaseName,
	KeyCreatedDate,
	KeySessionSecret,
	KeyEncryptionKey,
	KeyPostgresPassword,
}

// Secrets holds the generated credentials for an instance. They are
// generated once at deploy time and never reused across instances.
type Secrets struct {
	SessionSecret    string
	EncryptionKey    string
	PostgresPassword string
}

// Record is one deployed instance. Ports are assigned once at creation
// and are immutable; changing them requires recreating the instance.
type Record struct {
	Name         string
	AppPort      int
	DBPort       int
	CompanyName  string
	AdminEmail   string
	DatabaseName string
	CreatedAt    time.Time
	Secrets      Secrets
}

// Project returns the compose project name for this instance.
func (r *Record) Project() string {
	return config.ProjectPrefix + r.Name
}

// VolumeNames returns the names of the instance's mutable data volumes,
// as created by the compose project.
func (r *Record) VolumeNames() []string {
	return []string{
		r.Project() + "_appdata",
		r.Project() + "_pgdata",
	}
}

// Validate checks that the Record is complete and consistent.
func (r *Record) Validate() error {
	if err := config.ValidateInstanceName(r.Name); err != nil {
		return err
	}
	if r.AppPort < 1 || r.AppPort > 65535 {
		return fmt.Errorf("appPort must be between 1 and 65535 (got %d)", r.AppPort)
	}
	if r.DBPort < 1 || r.DBPort > 65535 {
		return fmt.Errorf("dbPort must be between 1 and 65535 (got %d)", r.DBPort)
	}
	if r.AppPort == r.DBPort {
		return fmt.Errorf("appPort and dbPort must differ (both %d)", r.AppPort)
	}
	if r.DatabaseName == "" {
		return fmt.Errorf("databaseName is required")
	}
	if r.Secrets.SessionSecret == "" || r.Secrets.EncryptionKey == "" || r.Secrets.PostgresPassword == "" {
		return fmt.Errorf("secrets are incomplete")
	}
	return nil
}
