package builder

import (
	"io"
	"testing"
)

func BenchmarkRead(b *testing.B) {
	raw, err := ParseGoSource("command.go", []byte(commandSource), "Job")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Read(raw)
	}
}

func BenchmarkSynthesizeAndRender(b *testing.B) {
	td := commandDescriptor()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		artifact, err := Synthesize(td)
		if err != nil {
			b.Fatal(err)
		}
		if err := RenderFile(io.Discard, FileOptions{Package: "command"}, artifact); err != nil {
			b.Fatal(err)
		}
	}
}
