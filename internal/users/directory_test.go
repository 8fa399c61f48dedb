package users

import "testing"

func TestLookupUnknownFallsBack(t *testing.T) {
	d := NewDirectory()

	p := d.Lookup("stranger")
	if p.Name != "Valued Customer" || p.Segment != "retail" {
		t.Errorf("profile = %+v, want default", p)
	}
}

func TestLookupSeeded(t *testing.T) {
	d := NewDirectory()
	d.Seed("s1", Profile{Name: "Budi", Segment: "premium"})

	p := d.Lookup("s1")
	if p.Name != "Budi" || p.Segment != "premium" {
		t.Errorf("profile = %+v, want seeded Budi/premium", p)
	}

	// Other sessions still default
	if q := d.Lookup("s2"); q != DefaultProfile {
		t.Errorf("profile = %+v, want default", q)
	}
}
