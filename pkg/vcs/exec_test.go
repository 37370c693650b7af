package vcs

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		binary  string
		args    []string
		timeout time.Duration
	}{
		{"binary not found", "nonexistent-git-12345", RemoteOriginURLArgs, time.Second},
		{"non-zero exit", "false", nil, time.Second},
		{"timeout", "sleep", []string{"5"}, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &ExecRunner{Binary: tt.binary}
			out, err := r.Run(t.Context(), tt.timeout, tt.args...)

			require.ErrorIs(t, err, ErrUnavailable)
			assert.Empty(t, out)
		})
	}
}

func TestExecRunner_ReturnsRawStdout(t *testing.T) {
	t.Parallel()

	r := &ExecRunner{Binary: "echo"}
	out, err := r.Run(t.Context(), time.Second, "git@github.com:aws/aws-sam-cli.git")

	require.NoError(t, err)
	assert.Equal(t, "git@github.com:aws/aws-sam-cli.git\n", out)
}

func TestExecRunner_OutsideRepository(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	r := &ExecRunner{Dir: t.TempDir()}
	_, err := r.Run(t.Context(), 5*time.Second, RootCommitArgs...)

	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewRunner(t *testing.T) {
	t.Parallel()

	r, err := NewRunner("", "/tmp")
	require.NoError(t, err)
	assert.IsType(t, &ExecRunner{}, r)

	r, err = NewRunner(BackendBuiltin, "/tmp")
	require.NoError(t, err)
	assert.IsType(t, &RepositoryRunner{}, r)

	_, err = NewRunner("svn", "/tmp")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "svn"))
}
