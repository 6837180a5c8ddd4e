// Copyright 2020 ConsenSys Software Inc.
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

// Package logger provides a global, structured logger for this module;
// the domain package uses it for accelerator warnings. It wraps zerolog the way
// github.com/consensys/gnark/logger does, so call sites read the same
// whether they come from this module or from gnark itself.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	log   zerolog.Logger
	mutex sync.RWMutex
)

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
}

// Logger returns the global logger used by this module.
func Logger() zerolog.Logger {
	mutex.RLock()
	defer mutex.RUnlock()
	return log
}

// SetOutput redirects the global logger to w, keeping the same fields.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	log = log.Output(w)
}

// SetLogger replaces the global logger entirely.
func SetLogger(l zerolog.Logger) {
	mutex.Lock()
	defer mutex.Unlock()
	log = l
}

// Disable silences all logging from this module.
func Disable() {
	SetLogger(zerolog.Nop())
}
