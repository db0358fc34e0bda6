package launcher

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tlog "github.com/thunderx/thunder/internal/log"
)

func newRecordingLauncher(command string, startErr error) (*Launcher, *[]*exec.Cmd) {
	var started []*exec.Cmd
	l := New(command, tlog.NullLogger())
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return startErr
	}
	return l, &started
}

func TestOpen_ConfiguredCommand(t *testing.T) {
	l, started := newRecordingLauncher("firefox --new-tab", nil)

	require.NoError(t, l.Open("https://t.me/thunderxservices"))
	require.Len(t, *started, 1)

	cmd := (*started)[0]
	assert.Equal(t, "firefox", filepath.Base(cmd.Args[0]))
	assert.Equal(t, []string{"--new-tab", "https://t.me/thunderxservices"}, cmd.Args[1:])
}

func TestOpen_RejectsUnsafeTargets(t *testing.T) {
	l, started := newRecordingLauncher("", nil)

	for _, target := range []string{"file:///etc/passwd", "javascript:alert(1)", "https://", "not a url"} {
		assert.Error(t, l.Open(target), target)
	}
	assert.Empty(t, *started)
}

func TestOpen_StartError(t *testing.T) {
	l, _ := newRecordingLauncher("", errors.New("exec: \"xdg-open\": executable file not found"))
	assert.Error(t, l.Open("https://instagram.com/thunderxservices"))
}

func TestDefaultCommand(t *testing.T) {
	target := "https://t.me/thunderxservices"

	assert.Equal(t, []string{"open", target}, defaultCommand("darwin", target).Args)
	assert.Equal(t, []string{"cmd", "/c", "start", "", target}, defaultCommand("windows", target).Args)
	assert.Equal(t, []string{"xdg-open", target}, defaultCommand("linux", target).Args)
}
