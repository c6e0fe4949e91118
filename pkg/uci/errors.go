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
	"errors"
	"fmt"
)

// ErrProcessExited is reported when a read hits the end of an engine's
// output stream, which means the engine process has terminated.
var ErrProcessExited = errors.New("uci: engine process exited")

// LaunchError is reported when an engine's process can't be spawned,
// usually because the configured executable does not exist.
type LaunchError struct {
	Name string // name of the engine
	Cmd  string // the command which failed to spawn
	Err  error
}

func (err *LaunchError) Error() string {
	return fmt.Sprintf("uci: launching %s (%s): %v", err.Name, err.Cmd, err.Err)
}

func (err *LaunchError) Unwrap() error {
	return err.Err
}

// ProtocolError is reported when an engine's output stream ends while the
// session is still waiting for an expected response line. The two engines
// can no longer be trusted to be in sync, so the match can't continue.
type ProtocolError struct {
	Engine    string // name of the misbehaving engine
	Expecting string // the response line that never arrived
	Err       error
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("uci: %s: expecting %q: %v", err.Engine, err.Expecting, err.Err)
}

func (err *ProtocolError) Unwrap() error {
	return err.Err
}
