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

package qpmodel

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func termsAsList(terms []Term) []any {
	list := make([]any, len(terms))
	for i, t := range terms {
		list[i] = map[string]any{"var": int(t.Var), "coeff": t.Coeff}
	}
	return list
}

func quadTermsAsList(terms []QuadTerm) []any {
	list := make([]any, len(terms))
	for i, t := range terms {
		list[i] = map[string]any{"i": int(t.I), "j": int(t.J), "coeff": t.Coeff}
	}
	return list
}

// Proto returns the model as a google.protobuf.Struct, the interchange form consumed by
// external solvers and tooling.
func (m *Model) Proto() (*structpb.Struct, error) {
	vars := make([]any, len(m.Variables))
	for i, v := range m.Variables {
		vars[i] = map[string]any{"name": v.Name, "type": v.Type.String()}
	}
	constraints := make([]any, len(m.Constraints))
	for i, c := range m.Constraints {
		constraints[i] = map[string]any{
			"name":      c.Name,
			"sense":     c.Sense.String(),
			"rhs":       c.Rhs,
			"linear":    termsAsList(c.Linear),
			"quadratic": quadTermsAsList(c.Quadratic),
		}
	}
	s, err := structpb.NewStruct(map[string]any{
		"name":      m.Name,
		"variables": vars,
		"objective": map[string]any{
			"sense":     m.Objective.Sense.String(),
			"constant":  m.Objective.Constant,
			"linear":    termsAsList(m.Objective.Linear),
			"quadratic": quadTermsAsList(m.Objective.Quadratic),
		},
		"constraints": constraints,
	})
	if err != nil {
		return nil, fmt.Errorf("converting model %q to proto failed: %w", m.Name, err)
	}
	return s, nil
}

// MarshalJSON encodes the proto form of the model with protojson.
func (m *Model) MarshalJSON() ([]byte, error) {
	s, err := m.Proto()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

func (m *Model) writeLPExpr(sb *strings.Builder, linear []Term, quadratic []QuadTerm, quadScale float64) {
	first := true
	writeTerm := func(c float64, v string) {
		switch {
		case first && c < 0:
			sb.WriteString("-")
		case !first && c < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		if c < 0 {
			c = -c
		}
		first = false
		sb.WriteString(formatCoeff(c))
		sb.WriteString(" ")
		sb.WriteString(v)
	}
	for _, t := range linear {
		writeTerm(t.Coeff, m.Variables[t.Var].Name)
	}
	if len(quadratic) > 0 {
		if first {
			sb.WriteString("[ ")
		} else {
			sb.WriteString(" + [ ")
		}
		first = true
		for _, t := range quadratic {
			writeTerm(t.Coeff*quadScale, m.Variables[t.I].Name+"*"+m.Variables[t.J].Name)
		}
		sb.WriteString(" ]")
		if quadScale != 1 {
			sb.WriteString(" / " + formatCoeff(quadScale))
		}
		first = false
	}
	if first {
		sb.WriteString("0")
	}
}

// ExportLP returns the model in the CPLEX LP file format.
func (m *Model) ExportLP() string {
	var sb strings.Builder
	sb.WriteString("\\ This file has been generated by qpmodel\n")
	fmt.Fprintf(&sb, "\\ Problem name: %s\n\n", m.Name)

	if m.Objective.Sense == Maximize {
		sb.WriteString("Maximize\n")
	} else {
		sb.WriteString("Minimize\n")
	}
	sb.WriteString(" obj: ")
	m.writeLPExpr(&sb, m.Objective.Linear, m.Objective.Quadratic, 2)
	if m.Objective.Constant != 0 {
		fmt.Fprintf(&sb, " + %s", formatCoeff(m.Objective.Constant))
	}
	sb.WriteString("\nSubject To\n")
	for _, c := range m.Constraints {
		fmt.Fprintf(&sb, " %s: ", c.Name)
		m.writeLPExpr(&sb, c.Linear, c.Quadratic, 1)
		op := c.Sense.String()
		if c.Sense == EQ {
			op = "="
		}
		fmt.Fprintf(&sb, " %s %s\n", op, formatCoeff(c.Rhs))
	}
	if len(m.Variables) > 0 {
		sb.WriteString("\nBinaries\n")
		for _, v := range m.Variables {
			sb.WriteString(" " + v.Name)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("End\n")
	return sb.String()
}
