// Copyright 2010-2024 Google LLC
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

package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// options are the flags shared by every subcommand.
type options struct {
	problem  string
	instance string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "qopt",
		Short: "Convert optimization problems into quadratic binary models",
		Long: `qopt converts instances of classic combinatorial problems into quadratic
programs over binary variables, exports them and solves small ones exactly.

Instances are JSON or YAML files. Every scalar field can be overridden with an
environment variable prefixed with QOPT_, e.g. QOPT_MAX_WEIGHT=10.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.problem, "problem", "", "Problem to convert: "+strings.Join(problemNames(), ", "))
	root.PersistentFlags().StringVar(&opts.instance, "instance", "", "JSON or YAML instance file")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newEncodeCmd(opts), newSolveCmd(opts))
	return root
}

func problemNames() []string {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// load reads the instance file and the environment into a new viper registry and builds the
// selected problem.
func (o *options) load(flags *pflag.FlagSet) (problem, error) {
	v := viper.New()
	v.SetEnvPrefix("QOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlag("problem", flags.Lookup("problem")); err != nil {
		return problem{}, err
	}
	for _, key := range scalarKeys {
		if err := v.BindEnv(key); err != nil {
			return problem{}, err
		}
	}
	if o.instance != "" {
		v.SetConfigFile(o.instance)
		if err := v.ReadInConfig(); err != nil {
			return problem{}, fmt.Errorf("reading instance %q failed: %w", o.instance, err)
		}
	}

	name := v.GetString("problem")
	newProblem, ok := problems[name]
	if !ok {
		return problem{}, fmt.Errorf("unknown problem %q, want one of %s", name, strings.Join(problemNames(), ", "))
	}
	var in instance
	if err := v.Unmarshal(&in); err != nil {
		return problem{}, fmt.Errorf("decoding instance %q failed: %w", o.instance, err)
	}
	return newProblem(&in)
}
