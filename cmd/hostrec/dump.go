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
	"bufio"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/dolthub/hostrec/cmd/util"
	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/libraries/hostcore/session"
	"github.com/dolthub/hostrec/store/bytebuf"
)

var warnColor = color.New(color.FgYellow)

func hostrecDump(app *kingpin.Application) (*kingpin.CmdClause, util.KingpinHandler) {
	cmd := app.Command("dump", "decodes the records of a fixed-width data file")
	layoutPath := cmd.Arg("layout", "YAML layout file").Required().String()
	dataPath := cmd.Arg("data", "data file holding back to back records").Required().String()
	ebcdic := cmd.Flag("ebcdic", "display fields are EBCDIC (code page 037)").Bool()
	limit := cmd.Flag("limit", "stop after this many records, 0 for all").Default("0").Int()

	return cmd, func(input string) int {
		s, err := newSession(*ebcdic)
		if err != nil {
			return util.CheckError(os.Stderr, err)
		}
		return util.CheckError(os.Stderr, runDump(os.Stdout, s, *layoutPath, *dataPath, *limit))
	}
}

func runDump(w io.Writer, s *session.Session, layoutPath, dataPath string, limit int) error {
	rec, err := loadRecord(s, layoutPath)
	if err != nil {
		return err
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return errors.Wrapf(err, "error opening data file %s", dataPath)
	}
	defer f.Close()

	return dumpRecords(w, s, rec, bufio.NewReader(f), limit)
}

// dumpRecords points |rec| at each record read from |r| in turn and prints its fields.
func dumpRecords(w io.Writer, s *session.Session, rec *record.Record, r io.Reader, limit int) error {
	defer rec.RestoreInitialDataBuffer()

	var total uint64
	n := 0
	for limit <= 0 || n < limit {
		chunk := make([]byte, rec.Length())
		read, err := io.ReadFull(r, chunk)
		if err == io.EOF {
			break
		} else if err == io.ErrUnexpectedEOF {
			warnColor.Fprintf(w, "trailing %d bytes do not make a full record\n", read)
			total += uint64(read)
			break
		} else if err != nil {
			return errors.Wrap(err, "error reading data file")
		}

		buf := bytebuf.FromBytes(chunk)
		key := s.Buffers.Add(buf)
		if err := rec.SetAddressToBuffer(buf); err != nil {
			return err
		}

		headerColor.Fprintf(w, "record %s at offset %s\n", humanize.Comma(int64(n+1)), humanize.Comma(int64(total)))
		if err := printFields(w, rec); err != nil {
			return err
		}

		rec.RestoreInitialDataBuffer()
		s.Buffers.Remove(key)
		total += uint64(read)
		n++
	}

	fmt.Fprintf(w, "%d records, %s\n", n, humanize.Bytes(total))
	return nil
}

func printFields(w io.Writer, rec *record.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	err := rec.Walk(func(e record.Element) (bool, error) {
		f, ok := e.(*record.Field)
		if !ok || f.IsFiller() {
			return false, nil
		}
		_, err := fmt.Fprintf(tw, "  %s\t%s\n", f.Name(), formatValue(f))
		return false, err
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}

func formatValue(f *record.Field) string {
	v, ok := f.TryValue()
	if !ok {
		return fmt.Sprintf("<invalid %X>", f.AsBytes())
	}
	switch val := v.(type) {
	case decimal.Decimal:
		return val.StringFixed(int32(f.DecimalDigits()))
	case string:
		return fmt.Sprintf("%q", val)
	}
	return fmt.Sprint(v)
}
