package model

import "testing"

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		input string
		owner string
		name  string
	}{
		{"acme/widget", "acme", "widget"},
		{"acme/widget/extra", "acme", "widget/extra"},
		{"widget", "", "widget"},
		{"acme/", "acme", ""},
		{"/widget", "", "widget"},
	}

	for _, tc := range tests {
		ref := ParseRepoRef(tc.input)
		if ref.Owner != tc.owner || ref.Name != tc.name {
			t.Errorf("ParseRepoRef(%q) = {%q, %q}, expected {%q, %q}",
				tc.input, ref.Owner, ref.Name, tc.owner, tc.name)
		}
	}
}

func TestRepoRef_FullName(t *testing.T) {
	ref := RepoRef{Owner: "acme", Name: "widget"}
	if ref.FullName() != "acme/widget" {
		t.Errorf("FullName() = %q, expected acme/widget", ref.FullName())
	}
}
