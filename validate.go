package fileconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by configuration types that carry their own
// validation rules.
type Validatable interface {
	Validate() error
}

// Validate runs cfg's own rules and returns their result unchanged.
func Validate(cfg Validatable) error {
	return cfg.Validate()
}

// Rule checks a loaded configuration value.
type Rule func(cfg any) error

// Check runs rules against cfg in order and returns the first failure.
// Errors that are not already an *Error are reported as ErrValidation.
func Check(cfg any, rules ...Rule) error {
	for _, rule := range rules {
		err := rule(cfg)
		if err == nil {
			continue
		}
		var typed *Error
		if errors.As(err, &typed) {
			return err
		}
		return newError(ErrValidation, err, "%v", err)
	}
	return nil
}

// SelfRule returns a rule that calls cfg's Validate method when cfg, or a
// pointer to it, implements Validatable.
func SelfRule() Rule {
	return func(cfg any) error {
		if v, ok := cfg.(Validatable); ok {
			return v.Validate()
		}
		rv := reflect.ValueOf(cfg)
		if !rv.IsValid() || rv.Kind() == reflect.Pointer {
			return nil
		}
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if v, ok := ptr.Interface().(Validatable); ok {
			return v.Validate()
		}
		return nil
	}
}

// shared validator instance, it caches struct metadata
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by the names used in files and override keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StructRule returns a rule enforcing `validate:"..."` struct tags
// (github.com/go-playground/validator). When the only failures are `required`
// tags the error is ErrMissingField, otherwise ErrValidation.
func StructRule() Rule {
	return func(cfg any) error {
		err := structValidator.Struct(cfg)
		if err == nil {
			return nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return newError(ErrValidation, err, "%v", err)
		}

		var missing, failed []string
		for _, fe := range verrs {
			field := fieldPath(fe.Namespace())
			if fe.Tag() == "required" {
				missing = append(missing, field)
				failed = append(failed, field+" is required")
				continue
			}
			failed = append(failed, fmt.Sprintf("%s failed on %q", field, fe.Tag()))
		}
		if len(missing) == len(failed) {
			return &Error{Kind: ErrMissingField, Msg: strings.Join(missing, ", "), Err: verrs}
		}
		return &Error{Kind: ErrValidation, Msg: strings.Join(failed, "; "), Err: verrs}
	}
}

// fieldPath drops the root type name from a validator namespace:
// "Config.database.host" becomes "database.host".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// ExprRule compiles a boolean expression (github.com/expr-lang/expr) into a
// rule. The expression sees the configuration as its value tree, so members
// are addressed by their JSON names and numbers are float64:
//
//	rule, err := fileconf.ExprRule(`server.port > 0 && database.host != ""`)
func ExprRule(src string) (Rule, error) {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", src, err)
	}

	return func(cfg any) error {
		env, err := exprEnv(cfg)
		if err != nil {
			return newError(ErrValidation, err, "rule %q: %v", src, err)
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return newError(ErrValidation, err, "rule %q: %v", src, err)
		}
		if ok, _ := out.(bool); !ok {
			return ValidationError("rule %q not satisfied", src)
		}
		return nil
	}, nil
}

// MustExprRule is like ExprRule but panics if the expression does not compile.
func MustExprRule(src string) Rule {
	rule, err := ExprRule(src)
	if err != nil {
		panic(err)
	}
	return rule
}

func exprEnv(cfg any) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%T is not an object", cfg)
	}
	return env, nil
}
