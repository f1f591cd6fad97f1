package catalog

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the schema inspected when a command does not name one.
	Name string `mapstructure:"name" default:"information_schema"`
	// TimeoutSeconds bounds connection setup, reads and writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheTTLSeconds is how long a captured schema is reused. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}
