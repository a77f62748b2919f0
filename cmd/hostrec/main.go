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
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/dolthub/hostrec/cmd/util"
	"github.com/dolthub/hostrec/libraries/hostcore/session"
	"github.com/dolthub/hostrec/libraries/utils/config"
)

var kingpinCommands = []util.KingpinCommand{
	hostrecLayout,
	hostrecDump,
}

// global flags, set by kingpin before any handler runs
var (
	configPath *string
	overrides  *map[string]string
	verbose    *bool
)

func main() {
	app := kingpin.New("hostrec", "Inspects host record layouts and decodes fixed-width data files.")
	app.HelpFlag.Short('h')

	configPath = app.Flag("config", "engine config YAML file").String()
	overrides = app.Flag("set", "override an engine config key, applied after --config").PlaceHolder("KEY=VALUE").StringMap()
	verbose = app.Flag("verbose", "log structure and alias events").Short('v').Bool()

	handlers := map[string]util.KingpinHandler{}
	for _, cmdFunction := range kingpinCommands {
		command, handler := cmdFunction(app)
		handlers[command.FullCommand()] = handler
	}

	input := kingpin.MustParse(app.Parse(os.Args[1:]))
	if handler := handlers[strings.Split(input, " ")[0]]; handler != nil {
		os.Exit(handler(input))
	}
}

// newSession builds the session a command runs in from the global flags. |ebcdic| overrides the configured
// charset.
func newSession(ebcdic bool) (*session.Session, error) {
	var path string
	if configPath != nil {
		path = *configPath
	}
	var updates map[string]string
	if overrides != nil {
		updates = *overrides
	}
	cfg, err := engineConfig(path, updates, ebcdic)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if err := cfg.ApplyLogLevel(logger); err != nil {
		return nil, err
	}
	if verbose != nil && *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return session.New(cfg, session.WithLogger(logrus.NewEntry(logger)))
}

// engineConfig layers the config file at |path|, the --set |updates| and the --ebcdic switch over the
// defaults, in that order.
func engineConfig(path string, updates map[string]string, ebcdic bool) (*config.EngineConfig, error) {
	cfg := config.DefaultEngineConfig()
	if path != "" {
		loaded, err := config.LoadEngineConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg, err := cfg.WithOverrides(updates)
	if err != nil {
		return nil, err
	}
	if ebcdic {
		cfg.Charset = "ebcdic"
	}
	return cfg, nil
}
