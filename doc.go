// Package fileconf loads configuration from a JSON, TOML or YAML file into a
// caller-defined struct, overlays values from environment variables and
// validates the result.
//
// # Features
//
//   - Format picked by file extension: .json, .toml, .yaml, .yml, or any
//     format added with RegisterFormat
//   - Environment overrides for any string, number or bool field, addressed
//     by CONFIG_ followed by the field path (CONFIG_SERVER_PORT)
//   - Optional .env file support
//   - Validation through the type's own Validate method, `validate` struct
//     tags, or boolean expressions (expr-lang/expr)
//   - Secret masking for logging the loaded configuration
//
// # Quick Start
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/vivaneiona/fileconf"
//	)
//
//	type Config struct {
//		Database struct {
//			Host     string `json:"host" yaml:"host" validate:"required"`
//			Port     int    `json:"port" yaml:"port"`
//			Password string `json:"password" yaml:"password" secret:"true"`
//		} `json:"database" yaml:"database"`
//		Server struct {
//			Host string `json:"host" yaml:"host"`
//			Port int    `json:"port" yaml:"port" validate:"gt=0,lt=65536"`
//		} `json:"server" yaml:"server"`
//	}
//
//	func main() {
//		cfg, err := fileconf.Load("config.yaml", Config{},
//			fileconf.WithRules(fileconf.StructRule()))
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Println(fileconf.PrettyString(cfg)) // secrets are masked
//	}
//
// # Environment Overrides
//
// After the file is decoded, the value is converted into a tree of objects,
// arrays and scalars whose member names are the JSON names of the struct
// fields. Every variable starting with CONFIG_ is turned into a key by
// removing the prefix and lower-casing the rest, and the key is split on
// every underscore into a path:
//
//	CONFIG_SERVER_PORT=9090   ->  server.port = 9090
//	CONFIG_DATABASE_HOST=db   ->  database.host = "db"
//
// The value is parsed according to the kind the leaf already has: numbers
// as integers or decimals, bools only from the exact literals true and
// false, strings verbatim.
// Keys that match no field and values that do not parse are skipped (see
// WithStrict). Objects, arrays and null fields are never overridden. The
// patched tree is then decoded back into the struct.
//
// Because every underscore starts a new segment, a field named "db_host" can
// not be overridden: CONFIG_DB_HOST means db.host. Settings and
// UnreachableFields list such fields.
//
// # Environment File Support
//
//	cfg, err := fileconf.LoadWithDotenv("config.toml", Config{}, ".env", ".env.local")
//
// Variables already present in the environment win over .env values. The
// process environment is never modified.
//
// # Testing
//
// Overrides can be disabled, or fed from a fixed snapshot instead of the
// process environment:
//
//	cfg, err := fileconf.Load("testdata/config.json", Config{}, fileconf.WithoutEnv())
//	cfg, err := fileconf.Load("testdata/config.json", Config{},
//		fileconf.WithEnv(fileconf.Environment{"CONFIG_SERVER_PORT": "9090"}))
//
// # Error Handling
//
// Errors are *Error values of one kind, to be tested with errors.Is:
//   - ErrFileNotFound: the file could not be opened
//   - ErrParse: unsupported extension, unreadable or undecodable content
//   - ErrMissingField: a required field is empty
//   - ErrEnvVar: the overridden value no longer fits the struct, or a strict
//     mode failure
//   - ErrValidation: a rule rejected the value
package fileconf
