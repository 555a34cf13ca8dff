package validation

import "testing"

func BenchmarkValidateItemValid(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ValidateItem("well-known phrase"); err != nil {
			b.Fatalf("ValidateItem() error = %v", err)
		}
	}
}

func BenchmarkValidateModeNameInvalid(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ValidateModeName("../etc/passwd"); err == nil {
			b.Fatalf("ValidateModeName() expected error for invalid name")
		}
	}
}
