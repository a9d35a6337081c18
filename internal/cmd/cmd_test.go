package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jfplabs/jfp/internal/config"
	"github.com/jfplabs/jfp/internal/content"
	"github.com/jfplabs/jfp/internal/moderation"
	"github.com/jfplabs/jfp/internal/referral"
)

// newTestApp builds a fully wired app over the embedded catalog, with stdout
// captured in a buffer.
func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()

	mod := moderation.NewStore()
	store, err := content.NewEmbeddedStore()
	if err != nil {
		t.Fatalf("loading embedded catalog: %v", err)
	}

	var buf bytes.Buffer
	a := &app{
		version:      "1.2.3",
		commit:       "abc1234",
		date:         "2026-01-01",
		outputFormat: "text",
		cfg:          config.Default(),
		store:        store.WithHider(mod),
		mod:          mod,
		refs:         referral.NewStore(map[string]string{"news.ycombinator.com": "jfp"}),
		stdout:       &buf,
		initialized:  true,
	}
	return a, &buf
}

func runCommand(t *testing.T, a *app, args ...string) error {
	t.Helper()
	root := newRootCmd(a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestListCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	out := buf.String()
	for _, id := range []string{"go-blog", "hn", "lobsters", "wiby"} {
		if !strings.Contains(out, id) {
			t.Errorf("list output missing %q", id)
		}
	}
}

func TestListCommand_CategoryFilter(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "list", "-c", "news"); err != nil {
		t.Fatalf("list -c news failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "lobsters") {
		t.Errorf("filtered list missing lobsters:\n%s", out)
	}
	if strings.Contains(out, "go-blog") {
		t.Errorf("filtered list leaked engineering entry:\n%s", out)
	}
}

func TestListCommand_TagFilter(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "list", "-t", "search"); err != nil {
		t.Fatalf("list -t search failed: %v", err)
	}

	out := buf.String()
	for _, id := range []string{"sourcegraph", "grep-app", "wiby"} {
		if !strings.Contains(out, id) {
			t.Errorf("tag filter missing %q:\n%s", id, out)
		}
	}
	if strings.Contains(out, "Hacker News") {
		t.Errorf("tag filter leaked untagged entry:\n%s", out)
	}
}

func TestSearchCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "search", "aggregator"); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "hn") || !strings.Contains(out, "lobsters") {
		t.Errorf("search missing expected matches:\n%s", out)
	}
	if strings.Contains(out, "excalidraw") {
		t.Errorf("search matched unrelated entry:\n%s", out)
	}
}

func TestSearchCommand_NoMatches(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "search", "zzz-nothing"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(buf.String(), "no items") {
		t.Errorf("empty search should print 'no items', got:\n%s", buf.String())
	}
}

func TestShowCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "show", "excalidraw"); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Excalidraw", "https://excalidraw.com", "diagrams"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommand_UnknownID(t *testing.T) {
	a, _ := newTestApp(t)

	err := runCommand(t, a, "show", "nope")
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShowCommand_JSON(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "--output", "json", "show", "hn"); err != nil {
		t.Fatalf("show --output json failed: %v", err)
	}

	var item content.Item
	if err := json.Unmarshal(buf.Bytes(), &item); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if item.ID != "hn" || item.URL != "https://news.ycombinator.com" {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestCategoriesCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "categories"); err != nil {
		t.Fatalf("categories failed: %v", err)
	}

	want := "engineering\nfun\nnews\ntools\n"
	if buf.String() != want {
		t.Errorf("categories = %q, want %q", buf.String(), want)
	}
}

func TestTagsCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "tags"); err != nil {
		t.Fatalf("tags failed: %v", err)
	}

	out := buf.String()
	for _, tag := range []string{"aggregator", "go", "retro", "search"} {
		if !strings.Contains(out, tag) {
			t.Errorf("tags output missing %q:\n%s", tag, out)
		}
	}
}

func TestRandomCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "random"); err != nil {
		t.Fatalf("random failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("random printed nothing")
	}
}

func TestOpenCommand_Print(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "open", "hn", "--print"); err != nil {
		t.Fatalf("open --print failed: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	if got != "https://news.ycombinator.com?ref=jfp" {
		t.Errorf("open --print = %q, want referral URL", got)
	}
}

func TestOpenCommand_PrintReferralDisabled(t *testing.T) {
	a, buf := newTestApp(t)
	a.cfg.Referral.Disabled = true

	if err := runCommand(t, a, "open", "hn", "--print"); err != nil {
		t.Fatalf("open --print failed: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	if got != "https://news.ycombinator.com" {
		t.Errorf("open --print = %q, want plain URL", got)
	}
}

func TestAboutCommand(t *testing.T) {
	a, buf := newTestApp(t)

	if err := runCommand(t, a, "about"); err != nil {
		t.Fatalf("about failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"version: 1.2.3", "commit:  abc1234", "8 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("about output missing %q:\n%s", want, out)
		}
	}
}

func TestHiddenEntriesAreInvisible(t *testing.T) {
	a, buf := newTestApp(t)
	a.mod.Hide("hn")

	if err := runCommand(t, a, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Contains(buf.String(), "Hacker News") {
		t.Errorf("hidden entry leaked into list:\n%s", buf.String())
	}

	if err := runCommand(t, a, "show", "hn"); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("hidden entry should be not-found, got %v", err)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	a, _ := newTestApp(t)

	if err := runCommand(t, a, "list", "--output", "bogus"); err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}
