package record

import "testing"

func TestParseArray_FieldOrderPreserved(t *testing.T) {
	records, err := ParseArray(`[{"z": 1, "a": 2, "m": 3}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || !records[0].Object {
		t.Fatalf("expected one object record, got %+v", records)
	}
	want := []string{"z", "a", "m"}
	for i, f := range records[0].Fields {
		if f.Key != want[i] {
			t.Fatalf("field %d: expected key %q, got %q", i, want[i], f.Key)
		}
	}
}

func TestParseArray_DuplicateKeysLastValueWins(t *testing.T) {
	records, err := ParseArray(`[{"a": 1, "b": 2, "a": "x"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := records[0].Fields
	if len(fields) != 2 {
		t.Fatalf("duplicate key must collapse to one field, got %d: %+v", len(fields), fields)
	}
	if fields[0].Key != "a" || fields[1].Key != "b" {
		t.Fatalf("first occurrence keeps its position: %+v", fields)
	}
	if s, ok := fields[0].Value.Str(); !ok || s != "x" {
		t.Fatalf("last value must win, got %q (string=%v)", s, ok)
	}
}

func TestParseArray_NonArrayTopLevel(t *testing.T) {
	for _, text := range []string{`{"a": 1}`, `"text"`, `42`, `null`, `true`} {
		records, err := ParseArray(text)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if records != nil {
			t.Fatalf("%q: expected no records, got %+v", text, records)
		}
	}
}

func TestParseArray_NonObjectElements(t *testing.T) {
	records, err := ParseArray(`[1, "x", null, {"a": true}, [2]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Index != i {
			t.Errorf("record %d has index %d", i, rec.Index)
		}
	}
	if records[0].Object || records[1].Object || records[2].Object || records[4].Object {
		t.Error("non-object elements must not be marked as objects")
	}
	if !records[3].Object {
		t.Error("object element must be marked as object")
	}
}

func TestParseArray_Malformed(t *testing.T) {
	for _, text := range []string{`{not json`, `[1,`, ``, `[1] trailing`, `{"a": }`} {
		if _, err := ParseArray(text); err == nil {
			t.Errorf("%q: expected parse error", text)
		}
	}
}

func TestValueKinds(t *testing.T) {
	records, err := ParseArray(`[{"n": null, "b": true, "i": 5, "f": 1.5, "s": "x", "a": [1, 2], "o": {"k": 1}}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := records[0].Fields
	kinds := []Kind{KindNull, KindBool, KindNumber, KindNumber, KindString, KindArray, KindObject}
	for i, want := range kinds {
		if got := fields[i].Value.Kind(); got != want {
			t.Errorf("field %q: kind %v, want %v", fields[i].Key, got, want)
		}
	}
	if s, ok := fields[4].Value.Str(); !ok || s != "x" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	if _, ok := fields[2].Value.Str(); ok {
		t.Error("Str() on a number must report false")
	}
}

func TestValueText_Compact(t *testing.T) {
	records, err := ParseArray(`[{"a": [1, 2], "n": null, "b": true, "s": "hi"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := records[0].Fields
	want := []string{`[1,2]`, `null`, `true`, `"hi"`}
	for i, w := range want {
		if got := fields[i].Value.Text(); got != w {
			t.Errorf("field %q: Text() = %q, want %q", fields[i].Key, got, w)
		}
	}
}
