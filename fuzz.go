package javaclass

// Fuzz is the legacy go-fuzz entrypoint (github.com/dvyukov/go-fuzz
// convention): parse, then round-trip through Write and re-Parse,
// returning 1 only when both the original and the re-serialized bytes
// decode cleanly. This is the same shape as the teacher's own fuzz.go,
// adapted to also exercise the write half of this module, since
// round-tripping is the central correctness property here.
func Fuzz(data []byte) int {
	cf, err := NewBytes(data, &Options{DisableAnomalyChecks: true})
	if err != nil {
		return 0
	}
	if err := cf.Parse(); err != nil {
		return 0
	}

	out, err := cf.Write()
	if err != nil {
		return 0
	}

	cf2, err := NewBytes(out, &Options{DisableAnomalyChecks: true})
	if err != nil {
		return 0
	}
	if err := cf2.Parse(); err != nil {
		return 0
	}

	return 1
}
