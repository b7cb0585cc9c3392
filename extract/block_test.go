package extract

import (
	"strings"
	"testing"
)

func TestBlockDetector(t *testing.T) {
	d := NewBlockDetector(nil)

	cases := []struct {
		name    string
		text    string
		blocked bool
	}{
		{"exact js-cookie notice", "Please enable Javascript and cookies to continue", true},
		{"uppercase variant", "PLEASE ENABLE JAVASCRIPT AND COOKIES TO CONTINUE", true},
		{"phrase inside article body", "The new chip launched today. Subscribe to continue reading the rest of this report.", true},
		{"captcha challenge", "Complete the CAPTCHA below to proceed", true},
		{"ad blocker wall", "We noticed an Ad Blocker Detected on your browser", true},
		{"clean article", "Shares rose 4% after the company reported record quarterly revenue.", false},
		{"empty text", "", false},
		{"near miss", "Javascript frameworks saw wide adoption this year.", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			phrase, blocked := d.Detect(c.text)
			if blocked != c.blocked {
				t.Fatalf("Detect(%q) blocked = %v; want %v (phrase %q)", c.text, blocked, c.blocked, phrase)
			}
			if blocked && phrase == "" {
				t.Fatalf("blocked result must report the matched phrase")
			}
		})
	}
}

func TestBlockDetectorCustomPhrases(t *testing.T) {
	d := NewBlockDetector([]string{"Members Only"})

	if _, blocked := d.Detect("this area is members only, sorry"); !blocked {
		t.Fatal("custom phrase should match case-insensitively")
	}
	// Custom list replaces the defaults entirely.
	if _, blocked := d.Detect("please enable javascript and cookies"); blocked {
		t.Fatal("default phrases should not apply when a custom list is set")
	}
}

func TestDefaultPhrasesAreLowercase(t *testing.T) {
	for _, p := range DefaultBlockPhrases {
		if p != strings.ToLower(p) {
			t.Errorf("phrase %q is not lowercase", p)
		}
	}
}
