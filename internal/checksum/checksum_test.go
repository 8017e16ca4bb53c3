package checksum

import "testing"

func TestSum_Known(t *testing.T) {
	// sha256("")
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %s, want %s", got, want)
	}
}

func TestFingerprint_NormalisesEmailAndSpace(t *testing.T) {
	a := Fingerprint("Alice", "alice@example.com", "Hello")
	b := Fingerprint(" Alice ", "ALICE@Example.com ", "Hello\n")
	if a != b {
		t.Errorf("fingerprints differ: %s vs %s", a, b)
	}
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	a := Fingerprint("ab", "x@y.z", "c")
	b := Fingerprint("a", "x@y.z", "bc")
	if a == b {
		t.Error("moving text between fields must change the fingerprint")
	}
}
