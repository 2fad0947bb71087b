package codegen

import "testing"

func TestCasing(t *testing.T) {
	tests := []struct {
		in     string
		snake  string
		camel  string
		pascal string
	}{
		{"simple", "simple", "simple", "Simple"},
		{"two_words", "two_words", "twoWords", "TwoWords"},
		{"kebab-case", "kebab_case", "kebabCase", "KebabCase"},
		{"alreadyCamel", "already_camel", "alreadyCamel", "AlreadyCamel"},
		{"PascalInput", "pascal_input", "pascalInput", "PascalInput"},
		{"HTTPRequest", "http_request", "httpRequest", "HttpRequest"},
		{"parseURL", "parse_url", "parseUrl", "ParseUrl"},
		{"v2_api", "v2_api", "v2Api", "V2Api"},
		{"Pair_u64", "pair_u64", "pairU64", "PairU64"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SnakeCase(tt.in); got != tt.snake {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.snake)
			}
			if got := CamelCase(tt.in); got != tt.camel {
				t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.camel)
			}
			if got := PascalCase(tt.in); got != tt.pascal {
				t.Errorf("PascalCase(%q) = %q, want %q", tt.in, got, tt.pascal)
			}
		})
	}
}

func TestSplitWords_AcronymRun(t *testing.T) {
	got := splitWords("HTTPRequest")
	want := []string{"HTTP", "Request"}
	if len(got) != len(want) {
		t.Fatalf("splitWords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}
