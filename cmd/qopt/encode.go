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

	log "github.com/golang/glog"
	"github.com/qopt/optimization/qopt/qpsolver"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
)

func newEncodeCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the quadratic program of an instance",
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
			log.V(1).Infof("encoding model %q as %s", m.Name, format)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				s, err := m.Proto()
				if err != nil {
					return err
				}
				b, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
				if err != nil {
					return fmt.Errorf("marshaling model %q failed: %w", m.Name, err)
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			case "lp":
				_, err := fmt.Fprint(out, m.ExportLP())
				return err
			case "opb":
				return qpsolver.WriteOPB(out, m)
			default:
				return fmt.Errorf("unknown format %q, want json, lp or opb", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "lp", "Output format: json, lp or opb")
	return cmd
}
