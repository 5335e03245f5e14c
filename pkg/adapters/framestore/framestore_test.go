package framestore

import (
	"strings"
	"testing"

	"github.com/user/promoreel/pkg/mocks"
	"github.com/user/promoreel/pkg/ports"
)

func stores(t *testing.T) map[string]ports.FrameStore {
	t.Helper()
	return map[string]ports.FrameStore{
		"memory": NewMemory(),
		"disk":   NewDisk("/scratch/frames", mocks.NewFileSystem()),
	}
}

func TestFrameStore_PutGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(0, []byte("frame-zero")); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := store.Put(1, []byte("frame-one")); err != nil {
				t.Fatalf("put: %v", err)
			}

			data, err := store.Get(1)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(data) != "frame-one" {
				t.Errorf("expected frame-one, got %q", data)
			}
			if store.Count() != 2 {
				t.Errorf("expected count 2, got %d", store.Count())
			}
		})
	}
}

func TestFrameStore_GetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(7); err == nil {
				t.Error("expected error for missing frame")
			}
		})
	}
}

func TestFrameStore_RejectsNegativeIndex(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(-1, []byte("x")); err == nil {
				t.Error("expected error for negative index")
			}
		})
	}
}

func TestFrameStore_Validate(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				if err := store.Put(i, []byte{byte(i)}); err != nil {
					t.Fatalf("put %d: %v", i, err)
				}
			}
			if err := store.Validate(5); err != nil {
				t.Errorf("dense store failed validation: %v", err)
			}
			if err := store.Validate(6); err == nil {
				t.Error("expected validation failure for short store")
			}
		})
	}
}

func TestFrameStore_Validate_Gap(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.Put(0, []byte("a"))
			store.Put(1, []byte("b"))
			store.Put(3, []byte("d")) // index 2 missing

			err := store.Validate(3)
			if err == nil {
				t.Fatal("expected gap to fail validation")
			}
			if !strings.Contains(err.Error(), "gap") {
				t.Errorf("expected gap error, got %v", err)
			}
		})
	}
}

func TestFrameStore_Purge(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store.Put(0, []byte("a"))
			if err := store.Purge(); err != nil {
				t.Fatalf("purge: %v", err)
			}
			if store.Count() != 0 {
				t.Errorf("expected empty store after purge, got %d", store.Count())
			}
			if _, err := store.Get(0); err == nil {
				t.Error("expected purged frame to be gone")
			}
		})
	}
}

func TestMemory_PutCopiesData(t *testing.T) {
	store := NewMemory()
	buf := []byte("original")
	store.Put(0, buf)
	buf[0] = 'X'

	data, err := store.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("stored frame aliased the caller's buffer: %q", data)
	}
}

func TestDisk_PurgeRemovesScratchDir(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := NewDisk("/scratch/frames", fs)
	store.Put(0, []byte("a"))
	store.Put(1, []byte("b"))

	if err := store.Purge(); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if files := fs.GetAllFiles(); len(files) != 0 {
		t.Errorf("expected no files after purge, got %d", len(files))
	}
}

func TestDisk_FileNaming(t *testing.T) {
	fs := mocks.NewFileSystem()
	store := NewDisk("/scratch/frames", fs)
	store.Put(42, []byte("frame"))

	if _, ok := fs.GetFile("/scratch/frames/frame_000042.jpg"); !ok {
		t.Errorf("expected zero-padded frame file, have %v", keysOf(fs.GetAllFiles()))
	}
}

func keysOf(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
