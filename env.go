package fileconf

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPrefix is the prefix an environment variable needs to be treated as
// an override.
const DefaultPrefix = "CONFIG_"

// Environment is a snapshot of environment variables, name to value.
type Environment map[string]string

// Environ returns a snapshot of the process environment. When a name appears
// more than once the last entry wins, as it would for os.Getenv.
func Environ() Environment {
	vars := os.Environ()
	env := make(Environment, len(vars))
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// FilterEnv selects the variables whose name starts with prefix, strips the
// prefix once and lower-cases what is left. The result maps override keys
// (e.g. "server_port") to raw values.
//
// Two names that only differ in case collapse onto one key; which one wins is
// unspecified.
func FilterEnv(env Environment, prefix string) map[string]string {
	out := make(map[string]string)
	for name, value := range env {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		out[strings.ToLower(strings.TrimPrefix(name, prefix))] = value
	}
	return out
}

// withDotenv returns env extended with the variables found in the given .env
// files. Variables already present in env are never replaced, and an earlier
// file wins over a later one, matching godotenv.Load. Missing files are
// skipped.
func withDotenv(env Environment, paths []string) (Environment, error) {
	merged := make(Environment, len(env))
	for k, v := range env {
		merged[k] = v
	}
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for k, v := range vars {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
