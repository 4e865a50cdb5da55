package links

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no urls",
			text: "just some words, no links here",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "single url with surrounding text",
			text: "check this out https://open.spotify.com/track/abc",
			want: []string{"https://open.spotify.com/track/abc"},
		},
		{
			name: "multiple urls keep text order",
			text: "a https://first.example/x b http://second.example/y c",
			want: []string{"https://first.example/x", "http://second.example/y"},
		},
		{
			name: "duplicates are not deduplicated",
			text: "https://a.example/1 and again https://a.example/1",
			want: []string{"https://a.example/1", "https://a.example/1"},
		},
		{
			name: "ftp scheme",
			text: "ftp://files.example.com/song.mp3",
			want: []string{"ftp://files.example.com/song.mp3"},
		},
		{
			name: "url with query",
			text: "https://music.example.com/track?id=42&ref=share",
			want: []string{"https://music.example.com/track?id=42&ref=share"},
		},
		{
			name: "bare scheme is not a url",
			text: "https:// is not enough, neither is www.example.com",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
