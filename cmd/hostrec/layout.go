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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/dolthub/hostrec/cmd/util"
	"github.com/dolthub/hostrec/libraries/hostcore/layoutfile"
	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/libraries/hostcore/session"
)

var headerColor = color.New(color.FgCyan, color.Bold)

func hostrecLayout(app *kingpin.Application) (*kingpin.CmdClause, util.KingpinHandler) {
	cmd := app.Command("layout", "prints the offset, length and kind of every element of a layout")
	path := cmd.Arg("file", "YAML layout file").Required().String()

	return cmd, func(input string) int {
		s, err := newSession(false)
		if err != nil {
			return util.CheckError(os.Stderr, err)
		}
		return util.CheckError(os.Stderr, runLayout(os.Stdout, s, *path))
	}
}

func loadRecord(s *session.Session, path string) (*record.Record, error) {
	l, err := layoutfile.Load(path)
	if err != nil {
		return nil, err
	}
	rec, err := s.NewRecord(l.Name, l.Define)
	if err != nil {
		return nil, err
	}
	s.Records.Add(rec)
	return rec, nil
}

func runLayout(w io.Writer, s *session.Session, path string) error {
	rec, err := loadRecord(s, path)
	if err != nil {
		return err
	}

	headerColor.Fprintf(w, "%s\n", rec.Name())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LVL\tNAME\tOFFSET\tLENGTH\tKIND\tDEC")
	err = rec.Walk(func(e record.Element) (bool, error) {
		name := strings.Repeat("  ", e.Level()-1) + e.Name()
		kind := e.Kind().String()
		switch t := e.(type) {
		case *record.Group:
			kind = "group"
		case *record.GroupArray:
			kind = fmt.Sprintf("occurs %d", t.Count())
		}
		_, err := fmt.Fprintf(tw, "%02d\t%s\t%d\t%d\t%s\t%d\n", e.Level(), name, e.Position(), e.Length(), kind, e.DecimalDigits())
		return false, err
	})
	if err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "record length: %d bytes (%s)\n", rec.Length(), humanize.Bytes(uint64(rec.Length())))
	fmt.Fprintf(w, "fingerprint:   %016x\n", rec.Fingerprint())
	return nil
}
