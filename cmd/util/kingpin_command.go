// Copyright 2026 Dolthub, Inc.
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

package util

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/alecthomas/kingpin.v2"
)

// KingpinHandler runs the command matching |input| and returns the process exit code.
type KingpinHandler func(input string) (exitCode int)

// KingpinCommand installs a command on |app| and returns the handler that runs it.
type KingpinCommand func(app *kingpin.Application) (*kingpin.CmdClause, KingpinHandler)

var errColor = color.New(color.FgRed, color.Bold)

// CheckError prints |err| to |w| and returns the exit code for it: 0 for nil and 1 otherwise.
func CheckError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	errColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err.Error())
	return 1
}
