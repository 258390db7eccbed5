package lerobot

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildConvertArgs(t *testing.T) {
	args := BuildConvertArgs("Manisha-Saleha/move-blue-cup-feb12-v1.1", "/data/lerobot")

	joined := strings.Join(args, " ")
	want := "-m lerobot.datasets.v30.convert_dataset_v21_to_v30 " +
		"--repo-id=Manisha-Saleha/move-blue-cup-feb12-v1.1 " +
		"--root=/data/lerobot --push-to-hub=0"
	if joined != want {
		t.Errorf("BuildConvertArgs:\n got %q\nwant %q", joined, want)
	}
}

func TestBuildMergeArgs_OrderPreserved(t *testing.T) {
	args := BuildMergeArgs([]string{"b-v2.1", "a-v1.1"}, "merged", "/data/merged")

	joined := strings.Join(args, " ")
	want := "-m lerobot.datasets.dataset_tools merge " +
		"--repo-id=b-v2.1 --repo-id=a-v1.1 " +
		"--output-repo-id=merged --output-dir=/data/merged"
	if joined != want {
		t.Errorf("BuildMergeArgs:\n got %q\nwant %q", joined, want)
	}
}

func TestBuildMergeArgs_EmptyInputs(t *testing.T) {
	args := BuildMergeArgs(nil, "merged", "/data/merged")
	for _, a := range args {
		if strings.HasPrefix(a, "--repo-id=") {
			t.Errorf("empty input set should produce no --repo-id flags, got %v", args)
		}
	}
}

func TestStderrTail(t *testing.T) {
	if got := stderrTail(""); got != "" {
		t.Errorf("empty stderr: got %q", got)
	}
	if got := stderrTail("one\ntwo\n"); got != "one\ntwo" {
		t.Errorf("short stderr: got %q", got)
	}

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("line\n")
	}
	got := stderrTail(b.String())
	if n := len(strings.Split(got, "\n")); n != stderrTailLines {
		t.Errorf("tail has %d lines, want %d", n, stderrTailLines)
	}
}

func TestRun_MissingInterpreter(t *testing.T) {
	tool := New("definitely-not-a-python-interpreter", false)
	err := tool.Convert(context.Background(), "site/name", "/tmp")
	if err == nil {
		t.Fatal("Convert should fail when the interpreter is missing")
	}
	if !strings.Contains(err.Error(), "convert site/name") {
		t.Errorf("error should identify the operation, got %v", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("unexpected context error: %v", err)
	}
}
