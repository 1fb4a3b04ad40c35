package identity

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exectest "gitsetup/internal/exec/testing"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a.b+c@sub.domain.com", true},
		{"jane@example.org", true},
		{"j_doe%test@my-host.co", true},
		{"not-an-email", false},
		{"@domain.com", false},
		{"user@domain", false},
		{"", false},
		{"two@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestCurrent_ReadsGlobalConfig(t *testing.T) {
	r := &exectest.FakeRunner{
		Responses: map[string][]exectest.Response{
			"git config --global --get user.name":  {{Output: "Jane Doe\n"}},
			"git config --global --get user.email": {{Output: "jane@example.org\n"}},
		},
	}
	c := NewConfigurator(r, nil, ui.NewPrinter(io.Discard))

	got := c.Current()
	assert.Equal(t, Identity{Name: "Jane Doe", Email: "jane@example.org"}, got)
}

func TestCurrent_MissingValuesAreEmptyNotFatal(t *testing.T) {
	// git exits 1 when a key is unset.
	r := &exectest.FakeRunner{Default: exectest.Response{ExitCode: 1}}
	c := NewConfigurator(r, nil, ui.NewPrinter(io.Discard))

	got := c.Current()
	assert.Equal(t, Identity{}, got)
}

func TestConfigure_DeclineIsNoOp(t *testing.T) {
	r := &exectest.FakeRunner{Default: exectest.Response{ExitCode: 1}}
	p := prompt.NewScript("n\n", io.Discard)
	c := NewConfigurator(r, p, ui.NewPrinter(io.Discard))

	err := c.Configure()
	require.NoError(t, err)
	assert.Zero(t, r.CountCalls("git config --global user.name"), "no writes on decline")
}

func TestConfigure_UpdatesBothFields(t *testing.T) {
	r := &exectest.FakeRunner{Default: exectest.Response{ExitCode: 1}}
	r.Responses = map[string][]exectest.Response{
		"git config --global user.name Jane Doe": {{}},
		"git config --global user.email jane@example.org": {{}},
		"git config --global --get user.name": {{ExitCode: 1}},
		"git config --global --get user.email": {{ExitCode: 1}},
	}

	script := "y\nJane Doe\njane@example.org\n"
	var out bytes.Buffer
	c := NewConfigurator(r, prompt.NewScript(script, &out), ui.NewPrinter(&out))

	err := c.Configure()
	require.NoError(t, err)
	assert.Equal(t, 1, r.CountCalls("git config --global user.name Jane Doe"))
	assert.Equal(t, 1, r.CountCalls("git config --global user.email jane@example.org"))
	assert.Contains(t, out.String(), "Git identity set to Jane Doe <jane@example.org>")
}

func TestConfigure_RepromptsUntilNameNonEmpty(t *testing.T) {
	r := &exectest.FakeRunner{Default: exectest.Response{}}
	r.Responses = map[string][]exectest.Response{
		"git config --global --get user.name":  {{ExitCode: 1}},
		"git config --global --get user.email": {{ExitCode: 1}},
	}

	// Empty name twice, then a real one.
	script := "y\n\n\nJane\njane@example.org\n"
	var out bytes.Buffer
	c := NewConfigurator(r, prompt.NewScript(script, &out), ui.NewPrinter(&out))

	err := c.Configure()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Name cannot be empty")
	assert.Equal(t, 1, r.CountCalls("git config --global user.name Jane"))
}

func TestConfigure_RepromptsUntilEmailValid(t *testing.T) {
	r := &exectest.FakeRunner{Default: exectest.Response{}}
	r.Responses = map[string][]exectest.Response{
		"git config --global --get user.name":  {{ExitCode: 1}},
		"git config --global --get user.email": {{ExitCode: 1}},
	}

	script := "y\nJane\nnot-an-email\nuser@domain\njane@example.org\n"
	var out bytes.Buffer
	c := NewConfigurator(r, prompt.NewScript(script, &out), ui.NewPrinter(&out))

	err := c.Configure()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "doesn't look like an email address")
	assert.Equal(t, 1, r.CountCalls("git config --global user.email jane@example.org"))
}

func TestConfigure_WriteFailureIsFatal(t *testing.T) {
	r := &exectest.FakeRunner{}
	r.Responses = map[string][]exectest.Response{
		"git config --global --get user.name": {{ExitCode: 1}},
		"git config --global --get user.email": {{ExitCode: 1}},
		"git config --global user.name Jane": {{Output: "error: could not lock config file", ExitCode: 255}},
	}

	script := "y\nJane\njane@example.org\n"
	c := NewConfigurator(r, prompt.NewScript(script, io.Discard), ui.NewPrinter(io.Discard))

	err := c.Configure()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.name")
}
