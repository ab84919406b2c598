// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag provides a wrapper around the standard flag package, allowing
// flags to be overridden by environment variables.
package envflag

import (
	"flag"
	"fmt"
	"strconv"
)

// Type is a constraint that permits only types supported by envflag package.
type Type interface {
	int | bool | string
}

// Value sets up a flag with the given name, default value, and usage
// information.
//
// If the environment variable specified by envName holds a valid value, it
// replaces the flag's default value. An explicit flag on the command line
// still wins.
func Value[T Type](
	fs *flag.FlagSet, getenv func(string) string,
	name, envName string, value T, usage string,
) *T {
	v := &flagValue[T]{val: new(T)}
	*v.val = value
	if env := getenv(envName); env != "" {
		// Invalid environment values are ignored in favour of the default.
		_ = v.Set(env)
	}
	fs.Var(v, name, usage+" Can be overridden by "+envName+" environment variable.")
	return v.val
}

type flagValue[T Type] struct {
	val *T
}

func (f *flagValue[T]) String() string {
	if f.val == nil {
		return ""
	}
	return fmt.Sprint(*f.val)
}

func (f *flagValue[T]) Set(s string) error {
	switch p := any(f.val).(type) {
	case *int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
	case *string:
		*p = s
	}
	return nil
}

// IsBoolFlag allows boolean flags to be set without a value.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(f.val).(*bool)
	return ok
}
