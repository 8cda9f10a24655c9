package fileconf

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Load reads the configuration file at path into cfg, overlays environment
// overrides and returns the result.
//
// The format is chosen by extension (json, toml, yaml, yml, or anything added
// with RegisterFormat). The file is decoded on top of cfg, so fields already
// set in cfg act as defaults for keys the file does not mention.
//
// Overrides are read from variables named DefaultPrefix followed by the path
// of a field, segments joined by underscores: CONFIG_SERVER_PORT targets the
// member "port" of the member "server". Member names are the JSON names of
// cfg's fields, so give the fields json tags matching the file keys; a
// variable that misses a member only by letter case is reported with a hint
// naming that member. Every
// underscore separates two segments; a field whose own name contains an
// underscore cannot be overridden. Only string, number and bool fields are
// overridden, and a value that does not parse into its field's kind is
// skipped unless WithStrict is given.
//
// Example:
//
//	type Config struct {
//	    Server struct {
//	        Host string `json:"host" toml:"host" yaml:"host"`
//	        Port int    `json:"port" toml:"port" yaml:"port"`
//	    } `json:"server" toml:"server" yaml:"server"`
//	}
//
//	cfg, err := fileconf.Load("config.yaml", Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// On error the zero value of T is returned and cfg, including anything it
// points to, is left untouched. A pointer cfg is updated in place on success.
func Load[T any](path string, cfg T, opts ...Option) (T, error) {
	var zero T
	o := newOptions(opts)

	report := o.report
	if report == nil {
		report = &Report{}
	}
	report.ID = uuid.New()
	report.Path = path
	logger := o.logger.With("load_id", report.ID.String(), "path", path)

	data, err := readFile(path)
	if err != nil {
		return zero, err
	}

	format, ok := FormatFor(path)
	if !ok {
		return zero, newError(ErrParse, nil, "unsupported file format %q", filepath.Ext(path))
	}
	report.Format = format.Name

	// work on a copy; cfg is only written once every phase succeeded
	loaded := clone(cfg)
	if err := format.Decode(data, &loaded); err != nil {
		return zero, newError(ErrParse, err, "%s: %v", path, err)
	}

	if !o.disableEnv {
		if err := overrideWithEnv(&loaded, o, report, logger); err != nil {
			return zero, err
		}
	}

	if err := Check(loaded, o.rules...); err != nil {
		return zero, err
	}

	logger.Debug("configuration loaded",
		"format", format.Name,
		"applied", len(report.Applied),
		"skipped", len(report.Skipped))
	return publish(cfg, loaded), nil
}

// LoadWithDotenv is Load with the given .env files (".env" when none are
// given) merged into the environment snapshot. Precedence, highest first:
//  1. process environment
//  2. .env files, earlier files first
//  3. the configuration file
//  4. values already set in cfg
func LoadWithDotenv[T any](path string, cfg T, dotenvPaths ...string) (T, error) {
	return Load(path, cfg, WithDotenv(dotenvPaths...))
}

// readFile reads the whole file; the handle is closed before it returns.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrFileNotFound, err, "%s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, newError(ErrParse, err, "read %s: %v", path, err)
	}
	return data, nil
}

// overrideWithEnv applies the environment overrides to cfg through a value
// tree: cfg is encoded to a tree, the tree is patched, and the patched tree
// is decoded back into cfg.
func overrideWithEnv[T any](cfg *T, o *options, report *Report, logger *slog.Logger) error {
	env := o.env
	if env == nil {
		env = Environ()
	}
	if len(o.dotenv) > 0 {
		merged, err := withDotenv(env, o.dotenv)
		if err != nil {
			return newError(ErrEnvVar, err, "read dotenv: %v", err)
		}
		env = merged
	}

	overrides := FilterEnv(env, o.prefix)
	if len(overrides) == 0 {
		return nil
	}

	tree, err := Tree(*cfg)
	if err != nil {
		return newError(ErrEnvVar, err, "%v", err)
	}
	if err := applyOverrides(&tree, overrides, o, report, logger); err != nil {
		return err
	}
	if err := rehydrate(tree, cfg); err != nil {
		return newError(ErrEnvVar, err, "%v", err)
	}
	return nil
}

func applyOverrides(tree *any, overrides map[string]string, o *options, report *Report, logger *slog.Logger) error {
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		raw := overrides[key]

		path := strings.Split(key, "_")
		slot, ok := Resolve(tree, path)
		if !ok {
			reason := "no matching field"
			// the usual cause is a field without a json tag, named like "Server"
			if near, found := resolveFold(*tree, path); found {
				reason = fmt.Sprintf("no matching field, %q differs only in case (missing json tag?)", strings.Join(near, "."))
			}
			if err := skip(key, reason, o, report, logger); err != nil {
				return err
			}
			continue
		}

		kind := KindOf(slot.Value())
		if !Coerce(slot, raw) {
			reason := fmt.Sprintf("cannot parse value as %s", kind)
			if !kind.Scalar() {
				reason = fmt.Sprintf("%s field cannot be overridden", kind)
			}
			if err := skip(key, reason, o, report, logger); err != nil {
				return err
			}
			continue
		}

		report.Applied = append(report.Applied, key)
		logger.Debug("env override applied", "key", key, "kind", kind.String())
	}
	return nil
}

func skip(key, reason string, o *options, report *Report, logger *slog.Logger) error {
	if o.strict {
		return newError(ErrEnvVar, nil, "%s%s: %s", o.prefix, strings.ToUpper(key), reason)
	}
	report.Skipped = append(report.Skipped, Skipped{Key: key, Reason: reason})
	logger.Debug("env override skipped", "key", key, "reason", reason)
	return nil
}

// rehydrate decodes tree into dst, which already holds the decoded file.
func rehydrate(tree any, dst any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode into %T: %w", dst, err)
	}
	return nil
}
