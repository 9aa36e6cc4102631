package sqlite

import (
	"testing"
	"time"

	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 1, 12, 34, 56, 0, time.UTC)
	out, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip changed the timestamp: %v -> %v", in, out)
	}
}

func TestFormatTime_TruncatesToSeconds(t *testing.T) {
	in := time.Date(2026, 3, 1, 12, 34, 56, 789000000, time.UTC)
	if got := formatTime(in); got != "2026-03-01 12:34:56" {
		t.Fatalf("unexpected formatted time %q", got)
	}
}

func TestFormatTime_ComparesAsText(t *testing.T) {
	earlier := formatTime(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	later := formatTime(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if !(earlier < later) {
		t.Fatalf("text comparison disagrees with time order: %q vs %q", earlier, later)
	}
}
