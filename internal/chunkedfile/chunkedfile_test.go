// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package chunkedfile

import (
	"fmt"
	"testing"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	r.reported = append(r.reported, formatted)
}

func (r *testReporter) assertNone(t *testing.T) {
	if len(r.reported) > 0 {
		t.Errorf("reporter expected no errors, got %d: %q", len(r.reported), r.reported)
	}
}

func (r *testReporter) assertOne(t *testing.T, exp string) {
	if len(r.reported) != 1 {
		t.Fatalf("reporter expected 1 error, got %d", len(r.reported))
	}
	if r.reported[0] != exp {
		t.Fatalf("reporter expected %q, got %q", exp, r.reported[0])
	}
}

func (r *testReporter) reset() {
	r.reported = nil
}

func TestChunkedFile(t *testing.T) {
	data := []byte(`let = 1; // ### "unexpected token"
---
x = 1;
print(x);
`)

	reporter := &testReporter{}
	chunks := readBytes("test_file", data, reporter, "\n")

	reporter.assertNone(t)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	exp := `let = 1; // ### "unexpected token"`
	chunk := chunks[0]
	if chunk.Source != exp {
		t.Fatalf("expected %q, got %q", exp, chunk.Source)
	}
	if !chunk.WantsError() || len(chunk.wantErrs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(chunk.wantErrs))
	}
	exp = "unexpected token"
	for _, re := range chunk.wantErrs {
		if re.String() != exp {
			t.Fatalf("expected %q, got %q", exp, re.String())
		}
	}

	// An expected error is consumed.
	chunk.GotError(1, `unexpected token "="`)
	reporter.assertNone(t)
	if len(chunk.wantErrs) != 0 {
		t.Fatalf("expected 0 errors, got %d", len(chunk.wantErrs))
	}

	// The same error again is unexpected.
	chunk.GotError(1, "unexpected token")
	reporter.assertOne(t, "\ntest_file:1: unexpected error: unexpected token")

	exp = "\n\nx = 1;\nprint(x);\n"
	chunk = chunks[1]
	if chunk.Source != exp {
		t.Fatalf("expected %q, got %q", exp, chunk.Source)
	}
	if chunk.WantsError() || chunk.HasWant {
		t.Fatalf("second chunk should have no expectations")
	}

	reporter.reset()
	chunk.GotError(123, "foobar")
	reporter.assertOne(t, "\ntest_file:123: unexpected error: foobar")
}

func TestChunkedFileWant(t *testing.T) {
	data := []byte(`if (true) {
  a();
}
===
a();
---
b(); // ### "boom"
`)

	reporter := &testReporter{}
	chunks := readBytes("test_file", data, reporter, "\n")
	reporter.assertNone(t)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got, want := chunks[0].Source, "if (true) {\n  a();\n}\n"; got != want {
		t.Errorf("source = %q, want %q", got, want)
	}
	if !chunks[0].HasWant || chunks[0].Want != "a();" {
		t.Errorf("want = %q (HasWant=%t), want %q", chunks[0].Want, chunks[0].HasWant, "a();")
	}

	// The second chunk starts on line 7 of the file.
	if chunks[1].Line != 7 {
		t.Errorf("second chunk starts at line %d, want 7", chunks[1].Line)
	}
	chunks[1].GotError(7, "boom!")
	chunks[1].Done()
	reporter.assertNone(t)
}
