package bootstrap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/readme"
)

const (
	startMarker = "<!-- pagestrap:quick-install:start -->"
	endMarker   = "<!-- pagestrap:quick-install:end -->"
)

func TestRun_FirstRunWithoutReadme(t *testing.T) {
	dir := newWorkspace(t)
	r, out := newTestReconciler(dir)

	res, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, readme.PhaseNoState, res.Phase)
	require.Equal(t, readme.ActionMaterialized, res.ReadmeAction)
	require.Empty(t, res.Warnings)

	dl := readTestFile(t, filepath.Join(dir, "docs", "dl.sh"))
	require.Contains(t, dl, `REPO_URL="https://github.com/acme/proj.git"`)
	// Only the first occurrence is substituted.
	require.Contains(t, dl, "# usage: REPO_URL=__REPO_URL__ ./dl.sh")

	info, err := os.Stat(filepath.Join(dir, "docs", "dl.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	require.Contains(t, readTestFile(t, filepath.Join(dir, "docs", "dl.ps1")), "'https://github.com/acme/proj.git'")
	require.Equal(t, "https://github.com/acme/proj.git\n", readTestFile(t, filepath.Join(dir, "docs", "repo-url.txt")))

	sum := sha256.Sum256([]byte(dl))
	wantHash := hex.EncodeToString(sum[:])
	require.Equal(t, wantHash, res.Derived.ScriptHash)

	index := readTestFile(t, filepath.Join(dir, "docs", "index.html"))
	require.Contains(t, index, "curl -fsSL https://acme.github.io/proj/dl.sh | bash")
	require.Contains(t, index, wantHash)

	doc := readTestFile(t, filepath.Join(dir, "README.md"))
	require.True(t, strings.HasPrefix(doc, "# Proj\n"))
	require.Equal(t, 1, strings.Count(doc, startMarker))
	require.NotContains(t, doc, "__")
	require.NoFileExists(t, filepath.Join(dir, "README.template.md"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(readTestFile(t, filepath.Join(dir, ".pagestrap", "state.json"))), &rec))
	require.Equal(t, map[string]any{
		"timestamp":    "2026-01-02T03:04:05Z",
		"gh_user":      "acme",
		"repo_name":    "proj",
		"repo_url":     "https://github.com/acme/proj.git",
		"pages_base":   "https://acme.github.io/proj",
		"dl_sh_sha256": wantHash,
	}, rec)

	require.Contains(t, out.String(), "wrote docs/dl.sh")
	require.Contains(t, out.String(), "wrote .pagestrap/state.json")
}

func TestRun_IdempotentRerun(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "# Template\n\nSome intro.\n")
	r, _ := newTestReconciler(dir)

	_, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	first := snapshot(t, dir)

	res, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, readme.PhaseBootstrapped, res.Phase)
	require.Equal(t, first, snapshot(t, dir))
}

func TestRun_FirstRunKeepAppendsExactlyOneBlock(t *testing.T) {
	dir := newWorkspace(t)
	original := "# Template\n\nSome intro.\n"
	writeTestFile(t, filepath.Join(dir, "README.md"), original)
	r, _ := newTestReconciler(dir)

	res, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, readme.ActionBlockAppended, res.ReadmeAction)

	doc := readTestFile(t, filepath.Join(dir, "README.md"))
	require.True(t, strings.HasPrefix(doc, original))
	require.Equal(t, 1, strings.Count(doc, startMarker))
	require.Equal(t, 1, strings.Count(doc, endMarker))

	res, err = r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, readme.ActionBlockReplaced, res.ReadmeAction)
	require.Equal(t, 1, strings.Count(readTestFile(t, filepath.Join(dir, "README.md")), startMarker))
}

func TestRun_BlockReplacementPreservesOutsideContent(t *testing.T) {
	dir := newWorkspace(t)
	before := "# Mine\n\nhand written\n\n"
	after := "\n\n## Footer\nkeep me\n"
	writeTestFile(t, filepath.Join(dir, "README.md"), before+startMarker+"\nstale\n"+endMarker+after)
	r, _ := newTestReconciler(dir)

	_, err := r.Run(context.Background(), acme)
	require.NoError(t, err)

	doc := readTestFile(t, filepath.Join(dir, "README.md"))
	require.True(t, strings.HasPrefix(doc, before+startMarker))
	require.True(t, strings.HasSuffix(doc, endMarker+after))
	require.NotContains(t, doc, "stale")
	require.Contains(t, doc, "curl -fsSL https://acme.github.io/proj/dl.sh | bash")
}

func TestRun_FirstRunReplaceBacksUpAndRotates(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "original readme\n")
	writeTestFile(t, filepath.Join(dir, "README.template.md"), "older backup\n")
	r, out := newTestReconciler(dir)

	flags := acme
	flags.ReplaceReadme = "yes"
	res, err := r.Run(context.Background(), flags)
	require.NoError(t, err)
	require.Equal(t, readme.ActionMaterialized, res.ReadmeAction)

	require.Equal(t, "original readme\n", readTestFile(t, filepath.Join(dir, "README.template.md")))
	require.Equal(t, "older backup\n", readTestFile(t, filepath.Join(dir, "README.template.md.bak")))
	require.True(t, strings.HasPrefix(readTestFile(t, filepath.Join(dir, "README.md")), "# Proj\n"))
	require.Contains(t, out.String(), "moved README.template.md to README.template.md.bak")
}

func TestRun_FirstRunPromptsForReadmeDecision(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "original readme\n")
	p := &scriptedPrompter{answers: []string{"", "y"}}
	r, _ := newTestReconciler(dir, WithPrompter(p))

	res, err := r.Run(context.Background(), Flags{User: "acme", Repo: "proj"})
	require.NoError(t, err)
	require.Equal(t, readme.ActionMaterialized, res.ReadmeAction)
	require.Contains(t, p.asked, "Replace README with a short generated one?")
}

func TestRun_RerunRegenerateMaterializes(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "original readme\n")
	r, _ := newTestReconciler(dir)

	_, err := r.Run(context.Background(), acme)
	require.NoError(t, err)

	flags := acme
	flags.RegenerateReadme = true
	res, err := r.Run(context.Background(), flags)
	require.NoError(t, err)
	require.Equal(t, readme.PhaseBootstrapped, res.Phase)
	require.Equal(t, readme.ActionMaterialized, res.ReadmeAction)
	require.True(t, strings.HasPrefix(readTestFile(t, filepath.Join(dir, "README.md")), "# Proj\n"))
	require.FileExists(t, filepath.Join(dir, "README.template.md"))
}

func TestRun_RerunPatchesPlaceholders(t *testing.T) {
	dir := newWorkspace(t)
	r, _ := newTestReconciler(dir)
	_, err := r.Run(context.Background(), acme)
	require.NoError(t, err)

	writeTestFile(t, filepath.Join(dir, "README.md"), "# __REPO_TITLE__\n\nSee __PAGES_BASE__ and __PAGES_BASE__.\n")
	res, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, readme.ActionPlaceholdersPatched, res.ReadmeAction)

	doc := readTestFile(t, filepath.Join(dir, "README.md"))
	require.True(t, strings.HasPrefix(doc, "# Proj\n\nSee https://acme.github.io/proj and https://acme.github.io/proj.\n"))
	require.Equal(t, 1, strings.Count(doc, startMarker))

	// A further run only refreshes the block.
	_, err = r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Equal(t, doc, readTestFile(t, filepath.Join(dir, "README.md")))
}

func TestRun_MissingTemplateFailsBeforeAnyWrite(t *testing.T) {
	dir := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "templates", "dl.ps1.tmpl")))
	writeTestFile(t, filepath.Join(dir, "README.md"), "untouched\n")
	r, out := newTestReconciler(dir)

	_, err := r.Run(context.Background(), acme)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryMissingArtifact))
	require.Contains(t, err.Error(), "dl.ps1.tmpl")

	require.NoDirExists(t, filepath.Join(dir, "docs"))
	require.NoDirExists(t, filepath.Join(dir, ".pagestrap"))
	require.Equal(t, "untouched\n", readTestFile(t, filepath.Join(dir, "README.md")))
	require.Empty(t, out.String())
}

func TestRun_ChecksumFailureDegrades(t *testing.T) {
	dir := newWorkspace(t)
	r, _ := newTestReconciler(dir, WithChecksummer(failingChecksummer{}))

	res, err := r.Run(context.Background(), acme)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	require.True(t, ferrors.IsWarning(res.Warnings[0]))
	require.Equal(t, ChecksumUnavailable, res.Derived.ScriptHash)

	require.Contains(t, readTestFile(t, filepath.Join(dir, "docs", "index.html")), ChecksumUnavailable)
	require.Contains(t, readTestFile(t, filepath.Join(dir, ".pagestrap", "state.json")), `"dl_sh_sha256": "(sha256 unavailable)"`)
}

func TestRun_UnbalancedMarkersFail(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "intro\n"+startMarker+"\nno end\n")
	r, out := newTestReconciler(dir)

	_, err := r.Run(context.Background(), acme)
	require.Error(t, err)
	require.ErrorIs(t, err, readme.ErrUnbalancedMarkers)
	require.NoDirExists(t, filepath.Join(dir, "docs"))
	require.NoFileExists(t, filepath.Join(dir, ".pagestrap", "state.json"))
	require.Equal(t, "intro\n"+startMarker+"\nno end\n", readTestFile(t, filepath.Join(dir, "README.md")))
	require.Empty(t, out.String())
}

func TestRun_InvalidReplaceAnswerFailsBeforeAnyWrite(t *testing.T) {
	dir := newWorkspace(t)
	writeTestFile(t, filepath.Join(dir, "README.md"), "original readme\n")
	r, out := newTestReconciler(dir)

	flags := acme
	flags.ReplaceReadme = "perhaps"
	_, err := r.Run(context.Background(), flags)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoDirExists(t, filepath.Join(dir, "docs"))
	require.Empty(t, out.String())
}

func TestRun_DomainChangesPagesBase(t *testing.T) {
	dir := newWorkspace(t)
	r, _ := newTestReconciler(dir)

	flags := acme
	flags.Domain = "tools.acme.dev"
	res, err := r.Run(context.Background(), flags)
	require.NoError(t, err)
	require.Equal(t, "https://tools.acme.dev", res.Derived.PagesBase)
	require.Contains(t, readTestFile(t, filepath.Join(dir, "README.md")), "curl -fsSL https://tools.acme.dev/dl.sh | bash")
}

func TestWriteState_OverwritesWithoutMerging(t *testing.T) {
	dir := newWorkspace(t)
	r, _ := newTestReconciler(dir)
	cfg := Configuration{Owner: "acme", Repo: "proj"}

	require.NoError(t, r.WriteState(cfg, DeriveURLs(cfg), "first"))
	cfg.Owner = "other"
	require.NoError(t, r.WriteState(cfg, DeriveURLs(cfg), ""))

	rec, err := r.store.Load()
	require.NoError(t, err)
	require.Equal(t, "other", rec.GHUser)
	require.Empty(t, rec.DLShSHA256)
}
