package main

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" utf-8, latin-1,,")
	if !reflect.DeepEqual(got, []string{"utf-8", "latin-1"}) {
		t.Fatalf("unexpected split: %#v", got)
	}
	if got := splitCSV(""); len(got) != 0 {
		t.Fatalf("expected empty, got %#v", got)
	}
}
