package mpris

import "testing"

func TestFileURIPath(t *testing.T) {
	tests := []struct {
		uri    string
		want   string
		wantOK bool
	}{
		{"file:///videos/a%20b.mp4", "/videos/a b.mp4", true},
		{"/videos/c.mkv", "/videos/c.mkv", true},
		{"https://example.com/x.mp4", "", false},
		{"file://", "", false},
	}

	for _, tt := range tests {
		got, ok := fileURIPath(tt.uri)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("fileURIPath(%q) = %q, %v; want %q, %v", tt.uri, got, ok, tt.want, tt.wantOK)
		}
	}
}
