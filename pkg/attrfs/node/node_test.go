package node

import (
	"sync"
	"testing"
)

func TestMemNodeAttributes(t *testing.T) {
	n := NewMemNode()

	if _, ok := n.Attribute("posix:group"); ok {
		t.Error("expected absent attribute on fresh node")
	}

	n.SetAttribute("posix:group", "staff")
	v, ok := n.Attribute("posix:group")
	if !ok || v != "staff" {
		t.Errorf("expected staff, got %v (present=%v)", v, ok)
	}

	n.SetAttribute("posix:group", "admins")
	v, _ = n.Attribute("posix:group")
	if v != "admins" {
		t.Errorf("set should replace the previous value, got %v", v)
	}
}

func TestMemNodeSeedAttributes(t *testing.T) {
	n := NewMemNode()
	n.SeedAttributes(map[string]any{
		"dos:hidden":  false,
		"dos:archive": true,
	})

	if v, ok := n.Attribute("dos:archive"); !ok || v != true {
		t.Errorf("expected seeded value true, got %v (present=%v)", v, ok)
	}
}

func TestMemNodeIdentity(t *testing.T) {
	a := NewMemNode()
	b := NewMemNode()
	if a.ID() == b.ID() {
		t.Error("nodes must have distinct identities")
	}
	if a.ID() != a.ID() {
		t.Error("a node's identity must be stable")
	}
}

func TestMemNodeContent(t *testing.T) {
	n := NewMemNode()
	size := n.SetContent([]byte("hello"))
	if size != 5 {
		t.Errorf("expected size 5, got %d", size)
	}

	content := n.Content()
	content[0] = 'H'
	if string(n.Content()) != "hello" {
		t.Error("Content must return a copy")
	}
}

func TestMemNodeConcurrentAccess(t *testing.T) {
	n := NewMemNode()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n.SetAttribute("basic:size", int64(v))
				n.Attribute("basic:size")
			}
		}(i)
	}
	wg.Wait()

	if _, ok := n.Attribute("basic:size"); !ok {
		t.Error("attribute lost after concurrent writes")
	}
}
