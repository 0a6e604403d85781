package perms

import "testing"

func TestFromString(t *testing.T) {
	t.Run("rw-r--r--", func(t *testing.T) {
		s, err := FromString("rw-r--r--")
		if err != nil {
			t.Fatalf("FromString failed: %v", err)
		}
		want := New(OwnerRead, OwnerWrite, GroupRead, OtherRead)
		if !s.Equal(want) {
			t.Errorf("expected %v, got %v", want, s)
		}
	})

	t.Run("rwxr-xr-x", func(t *testing.T) {
		s, err := FromString("rwxr-xr-x")
		if err != nil {
			t.Fatalf("FromString failed: %v", err)
		}
		want := New(OwnerRead, OwnerWrite, OwnerExecute,
			GroupRead, GroupExecute, OtherRead, OtherExecute)
		if !s.Equal(want) {
			t.Errorf("expected %v, got %v", want, s)
		}
	})

	t.Run("empty permissions", func(t *testing.T) {
		s, err := FromString("---------")
		if err != nil {
			t.Fatalf("FromString failed: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("expected empty set, got %v", s)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := FromString("rw-"); err == nil {
			t.Error("expected error for short string")
		}
	})

	t.Run("wrong character", func(t *testing.T) {
		if _, err := FromString("rwxrwxrwr"); err == nil {
			t.Error("expected error for 'r' in execute position")
		}
		if _, err := FromString("qw-r--r--"); err == nil {
			t.Error("expected error for unknown character")
		}
	})
}

func TestString(t *testing.T) {
	cases := []string{"---------", "rw-r--r--", "rwxr-xr-x", "rwxrwxrwx", "--x--x--x"}
	for _, str := range cases {
		t.Run(str, func(t *testing.T) {
			s, err := FromString(str)
			if err != nil {
				t.Fatalf("FromString failed: %v", err)
			}
			if got := s.String(); got != str {
				t.Errorf("expected %q, got %q", str, got)
			}
		})
	}
}

func TestClone(t *testing.T) {
	original := New(OwnerRead, OwnerWrite)
	clone := original.Clone()

	clone.Add(OtherExecute)
	clone.Remove(OwnerWrite)

	if !original.Has(OwnerWrite) {
		t.Error("mutating clone removed a flag from the original")
	}
	if original.Has(OtherExecute) {
		t.Error("mutating clone added a flag to the original")
	}
}

func TestEqual(t *testing.T) {
	a := New(OwnerRead, GroupRead)
	b := New(GroupRead, OwnerRead)
	c := New(OwnerRead)

	if !a.Equal(b) {
		t.Error("sets with same flags should be equal regardless of order")
	}
	if a.Equal(c) {
		t.Error("sets with different flags should not be equal")
	}
}

func TestFlagString(t *testing.T) {
	if got := OwnerRead.String(); got != "owner:read" {
		t.Errorf("expected owner:read, got %q", got)
	}
	if got := OtherExecute.String(); got != "other:execute" {
		t.Errorf("expected other:execute, got %q", got)
	}
}
