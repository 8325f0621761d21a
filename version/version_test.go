package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{build: "", expected: "1.2.3"},
		{build: "abc-12", expected: "1.2.3-abc-12"},
		{build: "bad build", expected: "1.2.3"},
		{build: "a.b", expected: "1.2.3"},
	}
	for _, test := range tests {
		result := formatVersion(1, 2, 3, test.build)
		if result != test.expected {
			t.Errorf("formatVersion with build %q: expected %s, got %s", test.build, test.expected, result)
		}
	}
}
