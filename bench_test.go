package strptime

import (
	"testing"
)

/*

go test -bench Parse

Compiling once and reusing the Format avoids re-scanning the format text
for every input; BenchmarkParseCompileEach shows the difference.

*/
func BenchmarkParseCompileEach(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, th := range benchInputs {
			if _, err := Parse(th.in, th.format); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkParseCompiled(b *testing.B) {
	formats := make([]*Format, len(benchInputs))
	for i, th := range benchInputs {
		formats[i] = MustCompile(th.format)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, th := range benchInputs {
			if _, err := formats[j].Parse(th.in); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkParseDateTime(b *testing.B) {
	f := MustCompile("%a, %d %b %Y %H:%M:%S %z")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := f.ParseDateTime("Tue, 05 Mar 2024 10:11:12 +0100"); err != nil {
			b.Fatal(err)
		}
	}
}

// A compiled Format is shared by every goroutine.
func BenchmarkParseParallel(b *testing.B) {
	f := MustCompile("%Y-%m-%d %H:%M:%S.%f")
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := f.ParseNaiveDateTime("2014-04-26 17:24:37.318636"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

var benchInputs = []struct {
	in, format string
}{
	{"2012/03/19 10:11:59", "%Y/%m/%d %H:%M:%S"},
	{"2009-08-12 22:15:09 -0700", "%Y-%m-%d %H:%M:%S %z"},
	{"2014-04-26 17:24:37.318636", "%Y-%m-%d %H:%M:%S.%f"},
	{"2014-12-16 06:20:00 UTC", "%Y-%m-%d %H:%M:%S %Z"},
	{"2014-04-26 05:24:37 PM", "%Y-%m-%d %I:%M:%S %p"},
	{"May 8, 2009 5:57:51 PM", "%B %-d, %Y %-I:%M:%S %p"},
	{"Mon Jan  2 15:04:05 2006", "%a %b %_d %H:%M:%S %Y"},
	{"Monday, 02 Jan 2006", "%A, %d %b %Y"},
	{"3/31/2014", "%-m/%-d/%Y"},
	{"2014-04-26", "%x"},
}
