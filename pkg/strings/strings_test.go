package strings

import (
	"strings"
	"testing"
	"unsafe"
)

func TestBytesToString(t *testing.T) {
	b := []byte("hello world")
	s := BytesToString(b)

	if s != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", s)
	}

	// Test empty slice
	empty := BytesToString([]byte{})
	if empty != "" {
		t.Errorf("expected empty string, got '%s'", empty)
	}
}

func TestStringToBytes(t *testing.T) {
	s := "hello world"
	b := StringToBytes(s)

	if string(b) != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", string(b))
	}

	// Test empty string
	empty := StringToBytes("")
	if empty != nil {
		t.Errorf("expected nil slice, got %v", empty)
	}
}

func TestBuilder(t *testing.T) {
	builder := NewBuilder(32)

	builder.WriteString("hello")
	builder.WriteByte(' ')
	builder.WriteString("world")

	result := builder.String()
	if result != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", result)
	}

	if builder.Len() != 11 {
		t.Errorf("expected length 11, got %d", builder.Len())
	}
}

func TestBuilderGrow(t *testing.T) {
	builder := NewBuilder(2)
	initialCap := cap(builder.Bytes())

	builder.Grow(64)
	if cap(builder.Bytes()) <= initialCap {
		t.Errorf("expected capacity to grow, initial: %d, after: %d", initialCap, cap(builder.Bytes()))
	}
}

func TestBuilderReset(t *testing.T) {
	builder := NewBuilder(32)
	builder.WriteString("test")

	if builder.Len() != 4 {
		t.Errorf("expected length 4, got %d", builder.Len())
	}

	builder.Reset()
	if builder.Len() != 0 {
		t.Errorf("expected length 0 after reset, got %d", builder.Len())
	}
}

func TestClone(t *testing.T) {
	original := "hello"
	cloned := Clone(original)

	if cloned != original {
		t.Errorf("expected %q, got %q", original, cloned)
	}
	if Clone("") != "" {
		t.Error("expected empty clone of empty string")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"", "a", -1},
		{"", "", 0},
	}

	for _, test := range tests {
		result := Compare(test.a, test.b)
		if result != test.expected {
			t.Errorf("Compare(%q, %q) = %d, expected %d", test.a, test.b, result, test.expected)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		strings   []string
		delimiter string
		expected  string
	}{
		{[]string{"a", "b", "c"}, ",", "a,b,c"},
		{[]string{"hello"}, ",", "hello"},
		{[]string{}, ",", ""},
		{[]string{"a", "", "b"}, ",", "a,,b"},
	}

	for _, test := range tests {
		result := Join(test.strings, test.delimiter)
		if result != test.expected {
			t.Errorf("Join(%v, %q) = %q, expected %q", test.strings, test.delimiter, result, test.expected)
		}
	}
}

func TestIntern(t *testing.T) {
	intern := NewIntern()

	s1 := intern.Get("hello")
	s2 := intern.Get("hello")

	// Should return the same string instance
	if s1 != s2 {
		t.Error("interned strings should be equal")
	}

	// Check that they are actually the same underlying string
	if unsafe.StringData(s1) != unsafe.StringData(s2) {
		t.Error("interned strings should share memory")
	}

	if intern.Size() != 1 {
		t.Errorf("expected size 1, got %d", intern.Size())
	}

	intern.Clear()
	if intern.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", intern.Size())
	}
}

func TestPooledBuilders(t *testing.T) {
	builder := GetBuilder(Small)
	builder.WriteString("test")
	if builder.String() != "test" {
		t.Errorf("expected 'test', got '%s'", builder.String())
	}
	PutBuilder(builder, Small)

	// Getting again should hand back a reset builder
	builder = GetBuilder(Small)
	if builder.Len() != 0 {
		t.Errorf("expected reset builder, got length %d", builder.Len())
	}
	PutBuilder(builder, Small)
}

func TestSprintf(t *testing.T) {
	result := Sprintf("value: %d", 42)
	if result != "value: 42" {
		t.Errorf("expected 'value: 42', got %q", result)
	}

	// No args returns the format unchanged
	if Sprintf("plain") != "plain" {
		t.Error("expected passthrough for argless format")
	}
}

// Benchmarks to compare with standard library

func BenchmarkBytesToString(b *testing.B) {
	data := []byte("hello world this is a test string")

	b.Run("ZeroCopy", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = BytesToString(data)
		}
	})

	b.Run("Standard", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = string(data)
		}
	})
}

func BenchmarkStringToBytes(b *testing.B) {
	s := "hello world this is a test string"

	b.Run("ZeroCopy", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = StringToBytes(s)
		}
	})

	b.Run("Standard", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = []byte(s)
		}
	})
}

func BenchmarkStringBuilder(b *testing.B) {
	parts := []string{"hello", " ", "world", " ", "this", " ", "is", " ", "a", " ", "test"}

	b.Run("ZeroCopyBuilder", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			builder := NewBuilder(64)
			for _, part := range parts {
				builder.WriteString(part)
			}
			_ = builder.String()
		}
	})

	b.Run("StandardBuilder", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var builder strings.Builder
			for _, part := range parts {
				builder.WriteString(part)
			}
			_ = builder.String()
		}
	})
}

func BenchmarkStringJoin(b *testing.B) {
	parts := []string{"hello", "world", "this", "is", "a", "test", "string"}

	b.Run("ZeroCopyJoin", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = Join(parts, " ")
		}
	})

	b.Run("StandardJoin", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = strings.Join(parts, " ")
		}
	})
}
