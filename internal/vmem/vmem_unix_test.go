//go:build linux || darwin

package vmem

import (
	"errors"
	"testing"
)

func TestReserveCommitRelease(t *testing.T) {
	page := PageSize()
	region, err := Reserve(4 * page)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	defer func() {
		if releaseErr := Release(region); releaseErr != nil {
			t.Fatalf("Release: %v", releaseErr)
		}
	}()
	if len(region) != 4*page {
		t.Fatalf("len mismatch: got %d want %d", len(region), 4*page)
	}

	if err := Commit(region[:page]); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	for i := 0; i < page; i++ {
		if region[i] != 0 {
			t.Fatalf("committed byte %d not zero: 0x%x", i, region[i])
		}
	}
	region[0] = 0xAA
	region[page-1] = 0xBB
	if region[0] != 0xAA || region[page-1] != 0xBB {
		t.Fatalf("committed page not writable")
	}
}

func TestMapIsZeroedAndWritable(t *testing.T) {
	data, err := Map(5000)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer func() {
		if releaseErr := Release(data); releaseErr != nil {
			t.Fatalf("Release: %v", releaseErr)
		}
	}()
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, b)
		}
	}
	data[4999] = 0x42
}

func TestInvalidSizes(t *testing.T) {
	if _, err := Reserve(0); !errors.Is(err, ErrSize) {
		t.Fatalf("Reserve(0): expected ErrSize, got %v", err)
	}
	if _, err := Map(-1); !errors.Is(err, ErrSize) {
		t.Fatalf("Map(-1): expected ErrSize, got %v", err)
	}
	if err := Release(nil); err != nil {
		t.Fatalf("Release(nil): %v", err)
	}
}
