package clone

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exectest "gitsetup/internal/exec/testing"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

type fakeLister struct {
	available bool
	urls      []string
	err       error
}

func (l *fakeLister) Available() bool            { return l.available }
func (l *fakeLister) List(int) ([]string, error) { return l.urls, l.err }

func newCloner(t *testing.T, r *exectest.FakeRunner, lister Lister, script string) (*Cloner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Cloner{
		runner:   r,
		prompter: prompt.NewScript(script, io.Discard),
		printer:  ui.NewPrinter(&buf),
		lister:   lister,
		workdir:  t.TempDir(),
		chown:    func(string) error { return nil },
	}, &buf
}

func stageNonEmptyDir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "f"), []byte("x"), 0o644))
}

func TestCollectManual_ValidationDuplicatesAndTermination(t *testing.T) {
	script := "git@github.com:owner/repo.git\n" +
		"https://github.com/owner/repo.git\n" + // wrong shape
		"git@github.com:repo.git\n" + // missing owner
		"git@github.com:owner/repo.git\n" + // duplicate
		"git@github.com:owner/other.git\n" +
		"\n"
	c, buf := newCloner(t, &exectest.FakeRunner{}, nil, script)

	locators, err := c.collectManual()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"git@github.com:owner/repo.git",
		"git@github.com:owner/other.git",
	}, locators)
	assert.Contains(t, buf.String(), "is not a valid locator")
	assert.Contains(t, buf.String(), "Skipping duplicate")
}

func TestPickIndices(t *testing.T) {
	urls := []string{"a", "b", "c"}
	c, buf := newCloner(t, &exectest.FakeRunner{}, nil, "")

	assert.Equal(t, []string{"a", "c"}, c.pickIndices(urls, "1,3"))
	assert.Equal(t, []string{"b"}, c.pickIndices(urls, "5, 2"))
	assert.Contains(t, buf.String(), `Skipping invalid index "5"`)
	assert.Empty(t, c.pickIndices(urls, "x,0,9"))
}

func TestSelectFromListing_AllToken(t *testing.T) {
	urls := []string{"git@github.com:o/a.git", "git@github.com:o/b.git"}
	c, _ := newCloner(t, &exectest.FakeRunner{}, nil, "ALL\n")

	got, err := c.selectFromListing(urls)
	require.NoError(t, err)
	assert.Equal(t, urls, got)
}

func TestSelectFromListing_RepromptsUntilNonEmpty(t *testing.T) {
	urls := []string{"git@github.com:o/a.git"}
	c, buf := newCloner(t, &exectest.FakeRunner{}, nil, "9\n1\n")

	got, err := c.selectFromListing(urls)
	require.NoError(t, err)
	assert.Equal(t, urls, got)
	assert.Contains(t, buf.String(), "Nothing selected")
}

func TestCollectLocators_EmptyListingFallsBackToManual(t *testing.T) {
	lister := &fakeLister{available: true, urls: nil}
	// Opt in to the listing, then one manual locator, then done.
	c, buf := newCloner(t, &exectest.FakeRunner{}, lister, "y\ngit@github.com:o/a.git\n\n")

	locators, err := c.collectLocators()
	require.NoError(t, err)
	assert.Equal(t, []string{"git@github.com:o/a.git"}, locators)
	assert.Contains(t, buf.String(), "no repositories")
}

func TestCollectLocators_DeclinedListingGoesManual(t *testing.T) {
	lister := &fakeLister{available: true, urls: []string{"git@github.com:o/a.git"}}
	c, _ := newCloner(t, &exectest.FakeRunner{}, lister, "n\n\n")

	locators, err := c.collectLocators()
	require.NoError(t, err)
	assert.Empty(t, locators)
}

func TestRun_NoLocatorsIsWarningNotError(t *testing.T) {
	r := &exectest.FakeRunner{}
	c, buf := newCloner(t, r, nil, "\n")

	err := c.Run()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No repositories selected")
	assert.Zero(t, r.CountCalls("git clone"))
}

func TestRun_SharedModeClonesEach(t *testing.T) {
	r := &exectest.FakeRunner{}
	script := "git@github.com:o/a.git\ngit@github.com:o/b.git\n\n" + // manual entry
		"y\n" + // shared base
		"\n" // base = workdir
	c, buf := newCloner(t, r, nil, script)

	err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/a.git "+filepath.Join(c.workdir, "a")))
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/b.git "+filepath.Join(c.workdir, "b")))
	assert.Contains(t, buf.String(), "Cloned a")
	assert.Contains(t, buf.String(), "Cloned b")
}

func TestDestName(t *testing.T) {
	tests := []struct {
		locator string
		want    string
	}{
		{"git@github.com:owner/repo.git", "repo"},
		{"https://github.com/o/widgets/", "widgets"},
		{"ssh://git@github.com:2222/owner/repo.git", "repo"},
		{"git@gitlab.com:group/sub/repo.git", "repo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, destName(tt.locator), tt.locator)
	}
}

func TestRun_ListingSelectionUsesParsedNames(t *testing.T) {
	r := &exectest.FakeRunner{}
	lister := &fakeLister{available: true, urls: []string{
		"https://github.com/o/widgets/",
		"git@github.com:o/tools.git",
	}}
	// Accept the listing, take everything, shared base = workdir.
	c, buf := newCloner(t, r, lister, "y\nall\ny\n\n")

	err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, r.CountCalls("git clone https://github.com/o/widgets/ "+filepath.Join(c.workdir, "widgets")))
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/tools.git "+filepath.Join(c.workdir, "tools")))
	assert.Contains(t, buf.String(), "Cloned widgets")
}

func TestRun_SharedModeCollisionUsesAlternativeVerbatim(t *testing.T) {
	r := &exectest.FakeRunner{}
	c, _ := newCloner(t, r, nil, "")
	stageNonEmptyDir(t, filepath.Join(c.workdir, "a"))

	alt := filepath.Join(c.workdir, "alt")
	// The alternative is used as given even though alt/a is also occupied.
	stageNonEmptyDir(t, filepath.Join(alt, "a"))

	script := "git@github.com:o/a.git\n\n" +
		"y\n" +
		"\n" + // base = workdir
		alt + "\n" // alternative base for a
	c.prompter = prompt.NewScript(script, io.Discard)

	err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/a.git "+filepath.Join(alt, "a")))
}

func TestRun_SharedModeFailureDoesNotAbortBatch(t *testing.T) {
	c, buf := newCloner(t, nil, nil, "")
	r := &exectest.FakeRunner{
		Responses: map[string][]exectest.Response{
			"git clone git@github.com:o/a.git " + filepath.Join(c.workdir, "a"): {
				{Output: "fatal: repository not found", ExitCode: 128},
			},
		},
	}
	c.runner = r

	script := "git@github.com:o/a.git\ngit@github.com:o/b.git\n\n" +
		"y\n" +
		"\n"
	c.prompter = prompt.NewScript(script, io.Discard)

	err := c.Run()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Could not clone git@github.com:o/a.git")
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/b.git"))
	assert.Contains(t, buf.String(), "Cloned b")
}

func TestRun_PerRepoModeCollisionReprompts(t *testing.T) {
	r := &exectest.FakeRunner{}
	c, buf := newCloner(t, r, nil, "")
	stageNonEmptyDir(t, filepath.Join(c.workdir, "a"))
	clean := filepath.Join(c.workdir, "clean")

	script := "git@github.com:o/a.git\n\n" +
		"n\n" + // per-repo mode
		"\n" + // workdir: collides
		clean + "\n" + // second try
		"y\n" // create it
	c.prompter = prompt.NewScript(script, io.Discard)

	err := c.Run()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "already exists and is not empty")
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/a.git "+filepath.Join(clean, "a")))
}

func TestRun_PerRepoModeRetryAfterFailure(t *testing.T) {
	c, _ := newCloner(t, nil, nil, "")
	second := filepath.Join(c.workdir, "second")
	r := &exectest.FakeRunner{
		Responses: map[string][]exectest.Response{
			"git clone git@github.com:o/a.git " + filepath.Join(c.workdir, "a"): {
				{Output: "fatal: early EOF", ExitCode: 128},
			},
		},
	}
	c.runner = r

	script := "git@github.com:o/a.git\n\n" +
		"n\n" + // per-repo mode
		"\n" + // first destination: clone fails
		"y\n" + // retry with a different path
		second + "\n" +
		"y\n" // create it
	c.prompter = prompt.NewScript(script, io.Discard)

	err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, r.CountCalls("git clone git@github.com:o/a.git"))
	assert.Equal(t, 1, r.CountCalls("git clone git@github.com:o/a.git "+filepath.Join(second, "a")))
}

func TestCloneOne_FixesOwnership(t *testing.T) {
	r := &exectest.FakeRunner{}
	c, _ := newCloner(t, r, nil, "")

	var chowned []string
	c.chown = func(path string) error {
		chowned = append(chowned, path)
		return nil
	}

	ok := c.cloneOne("git@github.com:o/a.git", filepath.Join(c.workdir, "a"))
	assert.True(t, ok)
	assert.Equal(t, []string{filepath.Join(c.workdir, "a")}, chowned)
}

func TestInvokingUser(t *testing.T) {
	t.Setenv("SUDO_UID", "1000")
	t.Setenv("SUDO_GID", "1000")
	uid, gid, ok := invokingUser()
	assert.True(t, ok)
	assert.Equal(t, 1000, uid)
	assert.Equal(t, 1000, gid)

	t.Setenv("SUDO_UID", "")
	_, _, ok = invokingUser()
	assert.False(t, ok)
}
