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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine writes the given shell script to a temporary file and
// returns an EngineConfig which runs it.
func stubEngine(t *testing.T, script string) EngineConfig {
	t.Helper()

	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return EngineConfig{Name: "stub", Cmd: path}
}

// uciStub speaks just enough UCI to drive a full session.
const uciStub = `#!/bin/sh
while read line; do
	case "$line" in
	uci)
		echo "id name stub"
		echo "id author nobody"
		echo "uciok"
		;;
	isready)
		echo "readyok"
		;;
	go*)
		echo "info depth 1 score cp 13"
		echo "bestmove e2e4 ponder e7e5"
		;;
	quit)
		exit 0
		;;
	esac
done
`

func TestStartEngine_MissingExecutable(t *testing.T) {
	_, err := StartEngine(EngineConfig{
		Name: "ghost",
		Cmd:  filepath.Join(t.TempDir(), "no-such-engine"),
	})
	require.Error(t, err)

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "ghost", launchErr.Name)
}

func TestEngine_SendReadLine(t *testing.T) {
	engine, err := StartEngine(stubEngine(t, uciStub))
	require.NoError(t, err)
	defer engine.Terminate()

	require.NoError(t, engine.Send("uci"))

	line, err := engine.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "id name stub", line)

	line, err = engine.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "id author nobody", line)
}

func TestEngine_ReadLineAfterExit(t *testing.T) {
	engine, err := StartEngine(stubEngine(t, "#!/bin/sh\nexit 0\n"))
	require.NoError(t, err)
	defer engine.Terminate()

	_, err = engine.ReadLine()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessExited)
}

func TestEngine_TerminateIdempotent(t *testing.T) {
	engine, err := StartEngine(stubEngine(t, uciStub))
	require.NoError(t, err)

	engine.Terminate()
	engine.Terminate() // second teardown must be a no-op
}

func TestEngine_Name(t *testing.T) {
	engine, err := StartEngine(stubEngine(t, uciStub))
	require.NoError(t, err)
	defer engine.Terminate()

	assert.Equal(t, "stub", engine.Name())
}
