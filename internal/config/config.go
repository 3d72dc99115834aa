// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/echovault/zsetdb/internal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerID   string `json:"ServerId" yaml:"ServerId"`
	Protocol   int    `json:"Protocol" yaml:"Protocol"`
	MaxMemory  uint64 `json:"MaxMemory" yaml:"MaxMemory"`
	RandomSeed int64  `json:"RandomSeed" yaml:"RandomSeed"`
	ScanCount  int    `json:"ScanCount" yaml:"ScanCount"`
}

// Validate reports the first field that holds an unusable value.
func (c Config) Validate() error {
	if c.Protocol != 2 && c.Protocol != 3 {
		return fmt.Errorf("protocol %d is not supported, use 2 or 3", c.Protocol)
	}
	if c.ScanCount <= 0 {
		return errors.New("scan count must be a positive integer")
	}
	return nil
}

// GetConfig builds the configuration from command line flags.
// When -config points at a JSON or YAML file, values in the file override the flags.
func GetConfig() (Config, error) {
	return parseConfig(flag.CommandLine, os.Args[1:])
}

func parseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	defaults := DefaultConfig()

	var maxMemory uint64 = 0
	fs.Func("max-memory", `Upper memory limit before writes are rejected.
Supported units (kb, mb, gb, tb, pb). When 0 is passed, there will be no memory limit.
There is no limit by default.`, func(memory string) error {
		if memory == "0" {
			maxMemory = 0
			return nil
		}
		b, err := internal.ParseMemory(memory)
		if err != nil {
			return err
		}
		maxMemory = b
		return nil
	})

	serverId := fs.String("server-id", defaults.ServerID, "Identifier of this instance.")
	protocol := fs.Int("protocol", defaults.Protocol, "RESP version used for replies. Either 2 or 3. Default is 2.")
	randomSeed := fs.Int64("random-seed", defaults.RandomSeed, "Seed for ZRANDMEMBER sampling. 0 seeds from the clock.")
	scanCount := fs.Int("scan-count", defaults.ScanCount, "Number of members ZSCAN visits when COUNT is not given.")

	config := fs.String(
		"config",
		"",
		`File path to a JSON or YAML config file.The values in this config file will override the flag values.`,
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	conf := Config{
		ServerID:   *serverId,
		Protocol:   *protocol,
		MaxMemory:  maxMemory,
		RandomSeed: *randomSeed,
		ScanCount:  *scanCount,
	}

	if len(*config) > 0 {
		// Override configurations from file
		if err := loadFile(*config, &conf); err != nil {
			return Config{}, err
		}
		log.Printf("loaded config from %s\n", *config)
	}

	return conf, conf.Validate()
}

func loadFile(name string, conf *Config) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if err = f.Close(); err != nil {
			log.Println(err)
		}
	}()

	switch ext := path.Ext(f.Name()); ext {
	case ".json":
		return json.NewDecoder(f).Decode(conf)
	case ".yaml", ".yml":
		return yaml.NewDecoder(f).Decode(conf)
	default:
		return fmt.Errorf("config file extension %s is not supported, use .json, .yaml or .yml", ext)
	}
}
