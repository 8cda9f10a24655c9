package fileconf

import (
	"os"
	"path/filepath"
	"testing"
)

type databaseConfig struct {
	Host string `json:"host" toml:"host" yaml:"host" validate:"required"`
	Port int    `json:"port" toml:"port" yaml:"port"`
}

type serverConfig struct {
	Host string `json:"host" toml:"host" yaml:"host"`
	Port uint16 `json:"port" toml:"port" yaml:"port" validate:"gt=0"`
}

// testConfig mirrors the two-section configuration used throughout the tests.
type testConfig struct {
	Database databaseConfig `json:"database" toml:"database" yaml:"database"`
	Server   serverConfig   `json:"server" toml:"server" yaml:"server"`
}

func (c testConfig) Validate() error {
	if c.Database.Host == "" {
		return ValidationError("database host is required")
	}
	if c.Server.Port == 0 {
		return ValidationError("server port must be non-zero")
	}
	return nil
}

const (
	testJSON = `{"database":{"host":"localhost","port":5432},"server":{"host":"0.0.0.0","port":8080}}`

	testTOML = `
[database]
host = "localhost"
port = 5432

[server]
host = "0.0.0.0"
port = 8080
`

	testYAML = `
database:
  host: localhost
  port: 5432
server:
  host: 0.0.0.0
  port: 8080
`
)

var wantTestConfig = testConfig{
	Database: databaseConfig{Host: "localhost", Port: 5432},
	Server:   serverConfig{Host: "0.0.0.0", Port: 8080},
}

// writeFile writes content to name inside a fresh temporary directory and
// returns the full path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
