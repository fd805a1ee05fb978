package urlstate

import (
	"strconv"
	"sync"
	"testing"
)

func TestParse_KeepsOnlyRecognizedKeys(t *testing.T) {
	t.Parallel()

	s, err := Parse("page=3&q=char&utm_source=spam&sort=name")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	state := s.State()
	if state.Page != "3" || state.Query != "char" || state.Sort != "name" {
		t.Fatalf("State = %+v, want page=3 q=char sort=name", state)
	}
	if got := s.Get("utm_source"); got != "" {
		t.Fatalf("unrecognized key survived: %q", got)
	}
}

func TestParse_RejectsMalformedQuery(t *testing.T) {
	t.Parallel()

	if _, err := Parse("a=%zz"); err == nil {
		t.Fatal("Parse accepted malformed query, want error")
	}
}

func TestApply_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := Parse("")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	s.Apply(map[string]string{"page": "3"})
	if got := s.State().Page; got != "3" {
		t.Fatalf("page = %q, want 3", got)
	}

	// Empty value removes the key entirely.
	s.Apply(map[string]string{"page": ""})
	if got := s.Encode(); got != "" {
		t.Fatalf("Encode = %q, want empty after removal", got)
	}
}

func TestApply_LeavesUnmentionedKeysUntouched(t *testing.T) {
	t.Parallel()

	s, err := Parse("page=2&q=bulb&favorites=1")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	s.Apply(map[string]string{"q": "ivy", "order": "desc"})

	state := s.State()
	if state.Page != "2" || state.Favorites != "1" {
		t.Fatalf("untouched keys changed: %+v", state)
	}
	if state.Query != "ivy" || state.Order != "desc" {
		t.Fatalf("updates not applied: %+v", state)
	}
}

// In the UI the query value arrives from a debounce timer goroutine while
// page and filter updates come from the update loop, so Apply, State, and
// Encode must tolerate overlapping callers. Run with -race.
func TestSync_ConcurrentApply(t *testing.T) {
	t.Parallel()

	s, err := Parse("")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Apply(map[string]string{"q": "char" + strconv.Itoa(i)})
				s.Apply(map[string]string{"page": strconv.Itoa(i), "filter": "fire"})
				s.Apply(map[string]string{"page": ""})
				_ = s.State()
				_ = s.Encode()
			}
		}()
	}
	wg.Wait()

	state := s.State()
	if state.Filter != "fire" {
		t.Fatalf("filter = %q, want fire", state.Filter)
	}
	if state.Page != "" {
		t.Fatalf("page = %q, want removed", state.Page)
	}
}

func TestEncode_RoundTripsThroughParse(t *testing.T) {
	t.Parallel()

	s, err := Parse("")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	s.Apply(map[string]string{
		"page": "4", "q": "saur", "filter": "flora",
		"sort": "name", "order": "desc", "favorites": "1",
	})

	again, err := Parse(s.Encode())
	if err != nil {
		t.Fatalf("Parse(Encode()) returned error: %v", err)
	}
	if again.State() != s.State() {
		t.Fatalf("round-trip mismatch: %+v != %+v", again.State(), s.State())
	}
}
