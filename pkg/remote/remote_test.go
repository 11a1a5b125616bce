package remote

import "testing"

func TestFromURL(t *testing.T) {
	r := FromURL("https://example.test/repo.git")
	if r.Name != "origin" || r.Branch != "master" || r.URL != "https://example.test/repo.git" {
		t.Errorf("unexpected remote from url: %+v", r)
	}
}

func TestWithDefaults(t *testing.T) {
	r := Remote{URL: "https://example.test/repo.git"}.WithDefaults()
	if r.Name != DefaultName {
		t.Errorf("empty name should default to %s, got %q", DefaultName, r.Name)
	}
	if r.Branch != DefaultBranch {
		t.Errorf("empty branch should default to %s, got %q", DefaultBranch, r.Branch)
	}

	r = Remote{Name: "upstream", URL: "x", Branch: "main"}.WithDefaults()
	if r.Name != "upstream" || r.Branch != "main" {
		t.Errorf("explicit name and branch should be kept: %+v", r)
	}
}

func TestValidate(t *testing.T) {
	if err := (Remote{Name: "origin"}).Validate(); err != ErrMissingURL {
		t.Errorf("a remote without url should fail validation, got %v", err)
	}

	if err := FromURL("git@example.test:repo.git").Validate(); err != nil {
		t.Errorf("a remote with an url should be valid: %v", err)
	}
}

func TestTrackingRef(t *testing.T) {
	r := Remote{Name: "upstream", URL: "x", Branch: "main"}
	if r.TrackingRef() != "upstream/main" {
		t.Errorf("unexpected tracking ref %q", r.TrackingRef())
	}
}
