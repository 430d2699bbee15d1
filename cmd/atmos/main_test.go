package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/atmos/internal/weather"
)

func TestLookupQuery(t *testing.T) {
	cases := []struct {
		name           string
		args           []string
		hasLat, hasLon bool
		want           weather.Query
		wantErr        string
	}{
		{name: "city", args: []string{" Paris "}, want: weather.ByName("Paris")},
		{name: "coords", hasLat: true, hasLon: true, want: weather.ByCoords(1.5, 2.5)},
		{name: "both", args: []string{"Paris"}, hasLat: true, wantErr: "not both"},
		{name: "half pair", hasLat: true, wantErr: "together"},
		{name: "blank city", args: []string{"  "}, wantErr: "empty"},
		{name: "nothing", wantErr: "required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lookupQuery(tc.args, 1.5, 2.5, tc.hasLat, tc.hasLon)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want.String() {
				t.Fatalf("query = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, weather.Snapshot{
		Name:    "Oslo",
		Sys:     weather.Sys{Country: "NO"},
		Main:    weather.Main{Temp: -3.6},
		Weather: []weather.Condition{{Main: "Snow", Description: "light snow"}},
		Mock:    true,
	})
	out := buf.String()
	for _, want := range []string{"Oslo, NO", "-4°C", "light snow", "(demo)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestHistoryCommand_Empty(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	cfgPath := filepath.Join(dir, "config.toml")
	body := "state_path = \"" + filepath.Join(dir, "atmos.db") + "\"\nlog_path = \"off\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"history", "--config", cfgPath, "--env-file", ""})
	if err := root.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out.String(), "No saved locations") {
		t.Fatalf("output = %q, want empty-state line", out.String())
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"unexpected"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error for a stray argument")
	}
}
