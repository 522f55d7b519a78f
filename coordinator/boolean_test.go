package coordinator

import (
	"reflect"
	"sort"
	"testing"
)

func TestParseSingleKeyword(t *testing.T) {
	expr, err := ParseExpression("rust")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := expr.(*KeywordExpr); !ok {
		t.Errorf("got %T", expr)
	}
}

func TestParseAndOr(t *testing.T) {
	if expr, err := ParseExpression("rust AND storage"); err != nil {
		t.Fatal(err)
	} else if _, ok := expr.(*AndExpr); !ok {
		t.Errorf("got %T", expr)
	}
	if expr, err := ParseExpression("rust OR python"); err != nil {
		t.Fatal(err)
	} else if _, ok := expr.(*OrExpr); !ok {
		t.Errorf("got %T", expr)
	}
}

func TestParseCaseInsensitiveOperators(t *testing.T) {
	for _, s := range []string{"rust and storage", "rust or python", "not rust"} {
		if _, err := ParseExpression(s); err != nil {
			t.Errorf("%q: %v", s, err)
		}
	}
}

func TestParseParensAndPrecedence(t *testing.T) {
	expr, err := ParseExpression("(rust OR python) AND storage")
	if err != nil {
		t.Fatal(err)
	}
	and, ok := expr.(*AndExpr)
	if !ok {
		t.Fatalf("got %T", expr)
	}
	if _, ok := and.Left.(*OrExpr); !ok {
		t.Errorf("expected left side to be an OR, got %T", and.Left)
	}
}

func TestGetKeywords(t *testing.T) {
	expr, err := ParseExpression("(rust OR python) AND storage")
	if err != nil {
		t.Fatal(err)
	}
	kws := Keywords(expr)
	sort.Strings(kws)
	if !reflect.DeepEqual(kws, []string{"python", "rust", "storage"}) {
		t.Errorf("got %v", kws)
	}
}

func TestEvaluateAnd(t *testing.T) {
	expr, err := ParseExpression("rust AND storage")
	if err != nil {
		t.Fatal(err)
	}
	results := map[string][]string{
		"rust":    {"file1", "file2"},
		"storage": {"file2", "file3"},
	}
	got, err := Evaluate(expr, results)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"file2"}) {
		t.Errorf("got %v", got)
	}
}

func TestEvaluateOr(t *testing.T) {
	expr, err := ParseExpression("rust OR python")
	if err != nil {
		t.Fatal(err)
	}
	results := map[string][]string{
		"rust":   {"file1"},
		"python": {"file2"},
	}
	got, err := Evaluate(expr, results)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"file1", "file2"}) {
		t.Errorf("got %v", got)
	}
}

func TestEvaluateAndNotIsSetDifference(t *testing.T) {
	expr, err := ParseExpression("rust AND NOT python")
	if err != nil {
		t.Fatal(err)
	}
	results := map[string][]string{
		"rust":   {"file1", "file2"},
		"python": {"file2"},
	}
	got, err := Evaluate(expr, results)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"file1"}) {
		t.Errorf("got %v", got)
	}
}

func TestEvaluateTopLevelNotIsUnsupported(t *testing.T) {
	expr, err := ParseExpression("NOT rust")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(expr, map[string][]string{}); err == nil {
		t.Error("expected top-level NOT to be rejected")
	}
}

func TestParseMalformedExpression(t *testing.T) {
	for _, s := range []string{"(rust", "rust AND", "AND rust", "rust storage)"} {
		if _, err := ParseExpression(s); err == nil {
			t.Errorf("expected parse error for %q", s)
		}
	}
}
