package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://github.com/aws/aws-sam-cli.git\n", "github.com/aws/aws-sam-cli.git"},
		{"http://github.com/aws/aws-sam-cli.git\n", "github.com/aws/aws-sam-cli.git"},
		{"git@github.com:aws/aws-sam-cli.git\n", "github.com/aws/aws-sam-cli.git"},
		{"https://github.com/aws/aws-cli.git\n", "github.com/aws/aws-cli.git"},
		{"http://not.a.real.site.com/somebody/my-project.git", "not.a.real.site.com/somebody/my-project.git"},
		{"git@not.github:person/my-project.git", "not.github/person/my-project.git"},
		{"  github.com/aws/aws-sam-cli.git \r\n", "github.com/aws/aws-sam-cli.git"},
		// Shapes outside the ssh shorthand are left alone.
		{"git@host:port:path.git", "git@host:port:path.git"},
		{"host:path.git", "host:path.git"},
		{"ssh://git@github.com/aws/aws-sam-cli.git", "ssh://git@github.com/aws/aws-sam-cli.git"},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanonicalOrigin(tt.origin))
		})
	}
}

func TestCanonicalOrigin_Equivalence(t *testing.T) {
	t.Parallel()

	want := Hash("github.com/aws/aws-sam-cli.git")
	for _, origin := range []string{
		"https://github.com/aws/aws-sam-cli.git",
		"http://github.com/aws/aws-sam-cli.git",
		"git@github.com:aws/aws-sam-cli.git",
	} {
		assert.Equal(t, want, Hash(CanonicalOrigin(origin)), origin)
	}
}

func TestProjectBasename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aws-sam-cli", ProjectBasename("github.com/aws/aws-sam-cli.git"))
	assert.Equal(t, "my-project", ProjectBasename("not.github/person/my-project.git"))
	assert.Equal(t, "no-suffix", ProjectBasename("example.com/team/no-suffix"))
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "C:/Users/aws/Windows/path/aws-sam-cli", NormalizePath(`C:\Users\aws\Windows\path\aws-sam-cli`))
	assert.Equal(t, "C:/", NormalizePath(`C:\`))
	assert.Equal(t, "/banana", NormalizePath("/banana"))
}

func TestHash_Stable(t *testing.T) {
	t.Parallel()

	// Values are RFC 4122 version 5 UUIDs in the URL namespace and must not
	// change between releases.
	tests := map[string]string{
		"github.com/aws/aws-sam-cli.git":           "29ffa285-ca58-50b2-b210-556096cd3232",
		"aws-sam-cli":                              "3e5d895e-b32d-54e1-b984-98f4e45074dd",
		"C:/Users/aws/Windows/path/aws-sam-cli":    "c64128ea-34a3-5d25-b393-ab752700853c",
		"0123456789abcdef0123456789abcdef01234567": "ea42da7e-6382-5189-961b-e846f483ac26",
	}

	for input, want := range tests {
		assert.Equal(t, want, Hash(input), input)
		assert.Equal(t, Hash(input), Hash(input))
	}
}
