package pgraph

import (
	"os"
	"strconv"

	"github.com/pgraph-io/pgraph/internal/database"
	"github.com/pgraph-io/pgraph/internal/logger"
)

// ConnectionConfig holds the settings needed to open a connection when the
// caller does not supply one.
type ConnectionConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// ConnectionString, when set, wins over the discrete fields.
	ConnectionString string
}

// Options is the single configuration record of the library. The zero value
// is usable; withDefaults fills the documented defaults.
type Options struct {
	// Name overrides the Db name when building from a connection; it
	// defaults to the connection's database name. A deserialized Db takes
	// its name from the snapshot, and Name has no effect there.
	Name string

	// EnvPrefix selects the environment variables consulted when no
	// connection source is given: <prefix>_HOST, _PORT, _USER, _PASSWORD,
	// _DATABASE, _CONNECTION_STRING. Default "DB".
	EnvPrefix string

	// CommentDataToken prefixes the JSON block parsed out of object
	// comments. Default "pg-structure".
	CommentDataToken string

	// IncludeSchemas and ExcludeSchemas are SQL LIKE patterns filtering the
	// loaded schemas ("%" and "_" wildcards).
	IncludeSchemas []string
	ExcludeSchemas []string

	// IncludeSystemSchemas loads pg_% and information_schema schemas too.
	// pg_toast and temp schemas are always excluded.
	IncludeSystemSchemas bool

	// ForeignKeyAliasSeparator splits alias lists embedded in FK constraint
	// names. Default ",".
	ForeignKeyAliasSeparator string

	// ForeignKeyAliasTargetFirst swaps the source/target order of embedded
	// alias lists.
	ForeignKeyAliasTargetFirst bool

	// RelationNaming selects a built-in naming strategy by name: "short"
	// (default) or "optimal".
	RelationNaming string

	// RelationNamer, when set, overrides RelationNaming with a custom
	// strategy. It is not preserved by serialization.
	RelationNamer RelationNamer

	// KeepConnection leaves a library-created connection open after
	// assembly. Caller-supplied connections are never closed.
	KeepConnection bool

	// Logger receives soft-skip warnings; nil means no logging.
	Logger *logger.Logger
}

const (
	defaultEnvPrefix        = "DB"
	defaultCommentDataToken = "pg-structure"
	defaultAliasSeparator   = ","
)

// withDefaults returns a copy with the documented defaults applied. A nil
// receiver yields all-default options.
func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.EnvPrefix == "" {
		out.EnvPrefix = defaultEnvPrefix
	}
	if out.CommentDataToken == "" {
		out.CommentDataToken = defaultCommentDataToken
	}
	if out.ForeignKeyAliasSeparator == "" {
		out.ForeignKeyAliasSeparator = defaultAliasSeparator
	}
	if out.RelationNaming == "" {
		out.RelationNaming = NamingShort
	}
	if out.Logger == nil {
		out.Logger = logger.Nop()
	}
	return &out
}

// namerFor resolves the effective naming strategy: a custom namer wins,
// then the built-in registry.
func (o *Options) namerFor() RelationNamer {
	if o.RelationNamer != nil {
		return o.RelationNamer
	}
	return builtinNamer(o.RelationNaming)
}

// connectionFromEnv resolves a ConnectionConfig from <prefix>_* variables.
// Missing variables leave fields empty; the driver applies its defaults.
func connectionFromEnv(prefix string) *ConnectionConfig {
	cfg := &ConnectionConfig{
		Host:             os.Getenv(prefix + "_HOST"),
		User:             os.Getenv(prefix + "_USER"),
		Password:         os.Getenv(prefix + "_PASSWORD"),
		Database:         os.Getenv(prefix + "_DATABASE"),
		ConnectionString: os.Getenv(prefix + "_CONNECTION_STRING"),
	}
	if p, err := strconv.Atoi(os.Getenv(prefix + "_PORT")); err == nil {
		cfg.Port = p
	}
	return cfg
}

// isEmpty reports whether nothing at all was resolved from the environment.
func (c *ConnectionConfig) isEmpty() bool {
	return c.Host == "" && c.User == "" && c.Database == "" && c.ConnectionString == ""
}

func (c *ConnectionConfig) driverConfig() *database.Config {
	if c.ConnectionString != "" {
		return database.ConfigFromDSN(c.ConnectionString)
	}
	cfg := database.DefaultConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.User = c.User
	cfg.Password = c.Password
	cfg.Database = c.Database
	cfg.SSLMode = c.SSLMode
	return cfg
}
