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

// The qopt command converts optimization problem instances into quadratic binary models,
// prints them, and solves small ones exactly.
//
// Usage:
//
//	qopt encode --problem knapsack --instance knapsack.yaml --format lp
//	qopt solve --problem max-cut --instance graph.json
package main

import (
	"flag"

	log "github.com/golang/glog"
)

func main() {
	if err := flag.CommandLine.Set("logtostderr", "true"); err != nil {
		log.Exitf("Setting -logtostderr failed: %v", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		log.Exitf("qopt: %v", err)
	}
}
