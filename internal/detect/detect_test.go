package detect

import "testing"

func TestSniff_Flat(t *testing.T) {
	input := `{"stats":{"tests":1},"tests":[{"title":"a","fullTitle":"s a","err":{}}],"pending":[],"failures":[],"passes":[]}`
	if got := Sniff([]byte(input)); got != Flat {
		t.Errorf("expected Flat, got %s", got)
	}
}

func TestSniff_Nested(t *testing.T) {
	input := `{"stats":{"tests":1},"results":[{"suites":[{"title":"Admin","tests":[]}]}],"meta":{}}`
	if got := Sniff([]byte(input)); got != Nested {
		t.Errorf("expected Nested, got %s", got)
	}
}

func TestSniff_NestedWinsOverFlat(t *testing.T) {
	input := `{"tests":[],"results":[]}`
	if got := Sniff([]byte(input)); got != Nested {
		t.Errorf("expected Nested, got %s", got)
	}
}

func TestSniff_Bare(t *testing.T) {
	if got := Sniff([]byte(`{"stats":{"tests":0}}`)); got != Bare {
		t.Errorf("expected Bare, got %s", got)
	}
}

func TestSniff_NonArrayFieldsAreBare(t *testing.T) {
	if got := Sniff([]byte(`{"tests":3,"results":null}`)); got != Bare {
		t.Errorf("expected Bare, got %s", got)
	}
}

func TestSniff_Empty(t *testing.T) {
	if got := Sniff([]byte("")); got != Unknown {
		t.Errorf("expected Unknown for empty, got %s", got)
	}
}

func TestSniff_PlainText(t *testing.T) {
	if got := Sniff([]byte("this is not json")); got != Unknown {
		t.Errorf("expected Unknown for plain text, got %s", got)
	}
}

func TestSniff_InvalidJSON(t *testing.T) {
	if got := Sniff([]byte("{invalid")); got != Unknown {
		t.Errorf("expected Unknown for invalid JSON, got %s", got)
	}
}

func TestSniff_TopLevelArray(t *testing.T) {
	if got := Sniff([]byte(`[{"tests":[]}]`)); got != Unknown {
		t.Errorf("expected Unknown for array document, got %s", got)
	}
}

func TestSniff_LeadingWhitespaceAndBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("\n  {\"tests\":[]}")...)
	if got := Sniff(input); got != Flat {
		t.Errorf("expected Flat with BOM and whitespace, got %s", got)
	}
}
