package playback

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		name      string
		displayed string
		spoken    string
		want      bool
	}{
		{"identical", "broker", "broker", true},
		{"case insensitive", "Broker", "broker", true},
		{"surrounding whitespace", " broker ", "broker", true},
		{"trailing period", "word.", "word", true},
		{"trailing comma", "running,", "running", true},
		{"apostrophe stripped", "Don't", "dont", true},
		{"bracketed", "(escrow)", "escrow", true},
		{"prefix within bound", "homestead", "homesteads", true},
		{"prefix too short", "ab", "abcdef", false},
		{"length diff beyond bound", "lease", "leaseholds", false},
		{"unrelated words", "title", "deed", false},
		{"empty displayed", "", "word", false},
		{"both empty", "", "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Matches(c.displayed, c.spoken); got != c.want {
				t.Fatalf("Matches(%q, %q) = %v; want %v", c.displayed, c.spoken, got, c.want)
			}
		})
	}
}
