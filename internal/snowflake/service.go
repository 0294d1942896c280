package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/snowflakedb/gosnowflake"
	"oraflake/internal/common"
	"oraflake/internal/dbt"
	"oraflake/internal/sqlcheck"
	"oraflake/pkg/errors"
)

// Service executes converted models against a Snowflake account
type Service struct {
	db        *sql.DB
	config    Config
	connected bool
}

// Config holds Snowflake connection configuration
type Config struct {
	Account   string
	Username  string
	Password  string
	Database  string
	Schema    string
	Warehouse string
	Role      string
	Timeout   time.Duration
}

// NewService creates a new Snowflake service
func NewService(config Config) *Service {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Service{config: config}
}

// NewServiceWithDB wraps an existing database handle; used by tests
func NewServiceWithDB(db *sql.DB, config Config) *Service {
	s := NewService(config)
	s.db = db
	s.connected = true
	return s
}

// ValidateConfig checks that the connection settings are complete
func ValidateConfig(config Config) error {
	if config.Account == "" {
		return errors.ConfigError("Snowflake account is required", "account")
	}
	if config.Username == "" {
		return errors.ConfigError("Snowflake username is required", "username")
	}
	if config.Password == "" {
		return errors.ConfigError("Snowflake password is required", "password")
	}
	if config.Warehouse == "" {
		return errors.ConfigError("Snowflake warehouse is required", "warehouse")
	}
	return nil
}

// Connect establishes a connection to Snowflake
func (s *Service) Connect(ctx context.Context) error {
	if s.connected {
		return nil
	}

	if err := ValidateConfig(s.config); err != nil {
		return err
	}

	return errors.RetryWithBackoff(ctx, func(ctx context.Context) error {
		dsn := fmt.Sprintf("%s:%s@%s/%s/%s?warehouse=%s&role=%s",
			s.config.Username,
			s.config.Password,
			s.config.Account,
			s.config.Database,
			s.config.Schema,
			s.config.Warehouse,
			s.config.Role,
		)

		db, err := sql.Open("snowflake", dsn)
		if err != nil {
			return errors.ConnectionError("Failed to open Snowflake connection", err).
				WithContext("account", s.config.Account)
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(10 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return errors.ConnectionError("Failed to connect to Snowflake", err).
				WithContext("account", s.config.Account).
				AsRecoverable()
		}

		s.db = db
		s.connected = true
		return nil
	})
}

// Close closes the database connection
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}
	s.connected = false
	return s.db.Close()
}

// ExecuteSQL runs every statement in sqlText sequentially. Statements are
// split the same way the validation gate splits them, so quoted semicolons
// survive.
func (s *Service) ExecuteSQL(ctx context.Context, sqlText string) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to Snowflake")
	}

	for _, stmt := range sqlcheck.SplitStatements(sqlText) {
		execCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
		_, err := s.db.ExecContext(execCtx, stmt)
		cancel()
		if err != nil {
			return errors.SQLError("Failed to execute statement", stmt, err)
		}
	}
	return nil
}

// ExecuteModelFile reads a wrapped model file, strips its dbt directives and
// executes the remaining SQL.
func (s *Service) ExecuteModelFile(ctx context.Context, path string) error {
	cleaned, err := common.CleanPath(path)
	if err != nil {
		return errors.FileError("Invalid model file path", path, err)
	}

	data, err := os.ReadFile(cleaned) // #nosec G304 - path is validated
	if err != nil {
		return errors.FileError("Failed to read model file", cleaned, err)
	}

	sqlText := dbt.StripDirectives(string(data))
	if sqlText == "" {
		return errors.New(errors.ErrCodeEmptyInput, "Model file contains no executable SQL").
			WithContext("path", cleaned)
	}

	return s.ExecuteSQL(ctx, sqlText)
}

// TestConnection verifies the connection is alive
func (s *Service) TestConnection(ctx context.Context) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to Snowflake")
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		return errors.ConnectionError("Connection test failed", err)
	}
	return nil
}
