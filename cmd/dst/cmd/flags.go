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

package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Common flags
const (
	flagDestination flagName = "destination"
	flagRegions     flagName = "regions"
	flagStrict      flagName = "strict"
	flagVerbose     flagName = "verbose"
)

func addStrictFlag(f *pflag.FlagSet) {
	f.Bool(string(flagStrict), false, "treat warnings as errors")
}

func addVerboseFlag(f *pflag.FlagSet) {
	f.BoolP(string(flagVerbose), "v", false, "print a summary after checking")
}

type flagName string

// ensureAdded panics if a command uses a flag it has not added to its
// flag set.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}
