package media

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		showTitle string
		want      string
	}{
		{
			name:      "marker quality and show stripped",
			input:     "Dark.S01E01.1080p.WEB-DL.mkv",
			showTitle: "Dark",
			want:      "",
		},
		{
			name:      "dashed show and episode title",
			input:     "The Office - Dinner Party.mkv",
			showTitle: "The Office",
			want:      "Dinner Party",
		},
		{
			name:  "bracketed release noise",
			input: "[EZTV] Winter is Coming (720p).mkv",
			want:  "Winter is Coming",
		},
		{
			name:  "underscore separators",
			input: "the_long_night_x265.mp4",
			want:  "the long night",
		},
		{
			name:  "spelled out episode marker",
			input: "Episode 7.mp4",
			want:  "",
		},
		{
			name:      "show title case insensitive",
			input:     "BREAKING BAD Ozymandias.mkv",
			showTitle: "Breaking Bad",
			want:      "Ozymandias",
		},
		{
			name:  "bare episode marker survives",
			input: "E05 The Heist.mkv",
			want:  "E05 The Heist",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input, tc.showTitle)
			if got != tc.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tc.input, tc.showTitle, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Dark.S01E01.1080p.WEB-DL.mkv",
		"The Office - Dinner Party.mkv",
		"[EZTV] Winter is Coming (720p).mkv",
		"plain title",
		"Episode 7.mp4",
	}
	for _, input := range inputs {
		once := Normalize(input, "")
		twice := Normalize(once, "")
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
