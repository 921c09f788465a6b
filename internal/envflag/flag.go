// Copyright 2026 The DST Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envflag fills a struct of settings from a comma-separated list
// held in an environment variable, such as
//
//	DST_DEBUG=log,cachesize=64
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init calls Parse with the value of the environment variable envVar.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// A setting describes one field of a flags struct.
type setting struct {
	index      int
	kind       reflect.Kind
	deprecated bool
}

// Parse sets the fields of flags, which must point to a struct, first to
// the defaults given in their field tags and then to the values listed in
// env.
//
// A field is named by its lower-cased Go name unless its tag gives a name.
// The tag is a comma-separated list of
//
//	name:N       the flag name
//	default:V    the value used when env does not mention the flag
//	deprecated   the flag may only be set to its default
//
// env holds comma-separated name=value pairs. A bare name sets a boolean
// flag to true; other kinds need a value. Empty elements are ignored.
// Supported field kinds are bool, int and string.
//
// Parse reports all problems it finds. Values it could parse are still set.
func Parse[T any](flags *T, env string) error {
	v := reflect.ValueOf(flags).Elem()
	settings, err := prepare(v)
	if err != nil {
		return err
	}

	var errs []error
	for _, elem := range strings.Split(env, ",") {
		if elem == "" {
			continue
		}
		name, text, hasValue := strings.Cut(elem, "=")
		s, ok := settings[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown flag %q", elem))
			continue
		}
		field := v.Field(s.index)

		var val reflect.Value
		switch {
		case hasValue:
			x, err := parseValue(name, s.kind, text)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			val = reflect.ValueOf(x).Convert(field.Type())
		case s.kind == reflect.Bool:
			val = reflect.ValueOf(true).Convert(field.Type())
		default:
			errs = append(errs, fmt.Errorf("flag %q needs a %s value", name, s.kind))
			continue
		}

		if s.deprecated {
			if !field.Equal(val) {
				errs = append(errs, fmt.Errorf("flag %q is deprecated and cannot be changed", name))
			}
			continue
		}
		field.Set(val)
	}
	return errors.Join(errs...)
}

// prepare applies the defaults of the struct held in v and returns its
// settings by name.
func prepare(v reflect.Value) (map[string]setting, error) {
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("flags must be a struct, not %s", t)
	}
	settings := make(map[string]setting, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		s := setting{index: i, kind: f.Type.Kind()}
		name := strings.ToLower(f.Name)

		for _, item := range strings.Split(f.Tag.Get("envflag"), ",") {
			key, arg, hasArg := strings.Cut(item, ":")
			switch key {
			case "":
			case "name":
				name = strings.ToLower(arg)
			case "default":
				x, err := parseValue(name, s.kind, arg)
				if err != nil {
					return nil, err
				}
				v.Field(i).Set(reflect.ValueOf(x).Convert(f.Type))
			case "deprecated":
				if hasArg {
					return nil, fmt.Errorf("field %s: deprecated takes no value", f.Name)
				}
				s.deprecated = true
			default:
				return nil, fmt.Errorf("field %s: unknown envflag tag %q", f.Name, item)
			}
		}
		if _, dup := settings[name]; dup {
			return nil, fmt.Errorf("field %s: duplicate flag name %q", f.Name, name)
		}
		settings[name] = s
	}
	return settings, nil
}

func parseValue(name string, kind reflect.Kind, text string) (any, error) {
	var (
		x   any
		err error
	)
	switch kind {
	case reflect.Bool:
		x, err = strconv.ParseBool(text)
	case reflect.Int:
		x, err = strconv.Atoi(text)
	case reflect.String:
		x = text
	default:
		return nil, invalidError{fmt.Errorf("flag %q has unsupported kind %s", name, kind)}
	}
	if err != nil {
		return nil, invalidError{fmt.Errorf("invalid %s value for flag %q: %v", kind, name, err)}
	}
	return x, nil
}

// ErrInvalid is matched by errors reporting a value that cannot be parsed.
var ErrInvalid = errors.New("invalid value")

type invalidError struct{ error }

func (invalidError) Is(err error) bool { return err == ErrInvalid }
