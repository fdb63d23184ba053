package version

import (
	"testing"

	"backoffice/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	t.Parallel()

	b := Info()
	if b.Service != "backoffice-api" || b.Version != "dev" {
		t.Fatalf("info = %+v", b)
	}
	if b.Commit == "" || b.Go == "" {
		t.Fatalf("commit and go must be set: %+v", b)
	}
}

func TestInfo_LinkerCommitWins(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &commit, "abc1234")

	if got := Info().Commit; got != "abc1234" {
		t.Fatalf("commit = %q", got)
	}
}
