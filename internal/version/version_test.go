package version

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = prev })
}

func withLdflags(t *testing.T, v, c, b string) {
	t.Helper()
	pv, pc, pb := Version, Commit, BuildTime
	Version, Commit, BuildTime = v, c, b
	t.Cleanup(func() { Version, Commit, BuildTime = pv, pc, pb })
}

func TestResolveLdflagsWin(t *testing.T) {
	withLdflags(t, "v1.2.0", "0123456789abcdef", "2026-01-02")
	withBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})

	got := Resolve()
	want := Info{Version: "v1.2.0", Commit: "0123456789abcdef", BuildTime: "2026-01-02"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if s := String(); s != "v1.2.0 (0123456789ab)" {
		t.Fatalf("String: got %q", s)
	}
}

func TestResolveBuildInfoFallback(t *testing.T) {
	withLdflags(t, "", "", "")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
		},
	})

	got := Resolve()
	want := Info{Version: "v0.3.0", Commit: "abc123", BuildTime: "2026-10-01T00:00:00Z"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveDevel(t *testing.T) {
	withLdflags(t, "", "", "")
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if got := Resolve().Version; got != "dev" {
		t.Fatalf("got %q, want dev", got)
	}
	withBuildInfo(t, nil)
	if got := String(); got != "dev" {
		t.Fatalf("String: got %q, want dev", got)
	}
}
