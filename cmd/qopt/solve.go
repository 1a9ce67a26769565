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
	"fmt"

	"github.com/qopt/optimization/qopt/qpmodel"
	"github.com/qopt/optimization/qopt/qpsolver"
	"github.com/spf13/cobra"
)

func newSolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve an instance exactly and print the decoded answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			m, err := p.model()
			if err != nil {
				return err
			}
			r, err := qpsolver.Solve(m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %v\n", r.Status)
			if r.Status != qpmodel.Success {
				return nil
			}
			answer, err := p.interpret(r)
			if err != nil {
				return fmt.Errorf("decoding the solution of model %q failed: %w", m.Name, err)
			}
			fmt.Fprintf(out, "objective: %v\n", r.Fval)
			fmt.Fprintf(out, "answer: %v\n", answer)
			return nil
		},
	}
}
