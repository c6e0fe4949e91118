// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package uci

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	Options map[string]string `yaml:"options"`
}

// StartEngine spawns the engine described by the given configuration and
// takes ownership of its standard input and output streams.
func StartEngine(config EngineConfig) (*Engine, error) {
	var engine Engine
	engine.config = config

	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)
	process.Dir = config.Dir

	stdin, _ := process.StdinPipe()
	stdout, _ := process.StdoutPipe()

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)

	engine.process = process

	if err := process.Start(); err != nil {
		return nil, &LaunchError{Name: config.Name, Cmd: config.Cmd, Err: err}
	}

	return &engine, nil
}

// Engine owns a single engine process and its piped text streams. All of
// its reads and writes are issued from the single thread driving the
// match, so none of its methods are safe for concurrent use.
type Engine struct {
	config EngineConfig

	process *exec.Cmd

	writer *bufio.Writer
	reader *bufio.Reader

	terminated bool
}

// Name returns the engine's configured name.
func (engine *Engine) Name() string {
	return engine.config.Name
}

// Send writes a single command line to the engine and flushes it.
func (engine *Engine) Send(format string, a ...any) error {
	logrus.Debugf("info: ("+engine.config.Name+")< "+format+"\n", a...)

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return err
	}

	return engine.writer.Flush()
}

// ReadLine blocks until a full line arrives from the engine and returns it
// with the surrounding whitespace trimmed. A read past the end of the
// stream reports ErrProcessExited. No timeout guards the read: an engine
// which goes silent without exiting blocks the caller indefinitely.
func (engine *Engine) ReadLine() (string, error) {
	line, err := engine.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("%s: %w", engine.config.Name, ErrProcessExited)
	}

	line = strings.Trim(line, " \n\t\r")

	logrus.Debugf("info: ("+engine.config.Name+")> %s\n", line)
	return line, nil
}

// Terminate tears the engine down: a polite quit followed by a forced
// kill. It is idempotent and never fails; errors from an already-exited
// process or a broken pipe are swallowed since they can't be acted upon
// during cleanup.
func (engine *Engine) Terminate() {
	if engine.terminated {
		return
	}
	engine.terminated = true

	_ = engine.Send("quit")
	_ = engine.process.Process.Kill()
	_ = engine.process.Wait() // reap the child
}
