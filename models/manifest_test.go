package models

import "testing"

func TestManifestAdd_PreservesInsertionOrder(t *testing.T) {
	m := NewManifest()
	m.Add("111/222/333", "Alice Smith")
	m.Add("444/555/666", "Bob Jones")
	m.Add("777/888/999", "Carol White")

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("Len() = %d, want 3", len(entries))
	}

	want := []string{"111/222/333", "444/555/666", "777/888/999"}
	for i, ref := range want {
		if entries[i].Reference != ref {
			t.Errorf("entries[%d].Reference = %q, want %q", i, entries[i].Reference, ref)
		}
	}
}

func TestManifestAdd_DuplicateKeepsPosition(t *testing.T) {
	m := NewManifest()
	m.Add("111/222/333", "Alice Smith")
	m.Add("444/555/666", "Bob Jones")
	m.Add("111/222/333", "Alice Smythe")

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after duplicate add", m.Len())
	}

	entries := m.Entries()
	if entries[0].Reference != "111/222/333" {
		t.Errorf("entries[0].Reference = %q, want first-inserted reference", entries[0].Reference)
	}
	if entries[0].FullName != "Alice Smythe" {
		t.Errorf("entries[0].FullName = %q, want updated name %q", entries[0].FullName, "Alice Smythe")
	}

	name, ok := m.Get("111/222/333")
	if !ok || name != "Alice Smythe" {
		t.Errorf("Get() = %q, %v, want %q, true", name, ok, "Alice Smythe")
	}
}

func TestManifestGet_Missing(t *testing.T) {
	m := NewManifest()
	if name, ok := m.Get("000/000/000"); ok {
		t.Errorf("Get() on empty manifest = %q, true, want false", name)
	}
}
