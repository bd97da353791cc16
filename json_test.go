package gopoly_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/njchilds90/gopoly"
)

func TestToJSON(t *testing.T) {
	res, err := gopoly.Run("3x^2 - 1.5xy = 0")
	if err != nil {
		t.Fatal(err)
	}
	got, err := gopoly.ToJSON(res.Terms)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"terms":[{"coefficient":"3","vars":[{"name":"x","exp":2}]},{"coefficient":"-1.5","vars":[{"name":"x","exp":1},{"name":"y","exp":1}]}]}`
	if got != want {
		t.Errorf("want %s\n got %s", want, got)
	}
}

func TestFromJSON_Fractions(t *testing.T) {
	expr, err := gopoly.FromJSON([]byte(`{"terms":[{"coefficient":"1/3","vars":[{"name":"x","exp":1}]},{"coefficient":"-2"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := gopoly.Format(expr); got != "0.333333333333x - 2 = 0" {
		t.Errorf("got %q", got)
	}
	out, err := gopoly.ToJSON(expr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"coefficient":"1/3"`) {
		t.Errorf("non-terminating coefficient should stay a fraction: %s", out)
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	cases := []string{
		`not json`,
		`{"terms":[{"coefficient":"abc"}]}`,
		`{"terms":[{"coefficient":"1","vars":[{"name":"xy","exp":1}]}]}`,
		`{"terms":[{"coefficient":"1","vars":[{"name":"x","exp":-1}]}]}`,
		`{"terms":[{"coefficient":"1","vars":[{"name":"x","exp":1},{"name":"x","exp":2}]}]}`,
	}
	for _, c := range cases {
		if _, err := gopoly.FromJSON([]byte(c)); err == nil {
			t.Errorf("FromJSON(%s): want error", c)
		}
	}
}

// ============================================================
// Inspection
// ============================================================

func TestDegreeAndVariables(t *testing.T) {
	res, err := gopoly.Run("x^3 + 3xy + y^2 = (x^2 + xy)")
	if err != nil {
		t.Fatal(err)
	}
	if d := gopoly.Degree(res.Terms, 'x'); d != 3 {
		t.Errorf("degree in x: want 3, got %d", d)
	}
	if d := gopoly.Degree(res.Terms, 'y'); d != 2 {
		t.Errorf("degree in y: want 2, got %d", d)
	}
	if d := gopoly.Degree(res.Terms, 'z'); d != 0 {
		t.Errorf("degree in z: want 0, got %d", d)
	}
	if d := gopoly.TotalDegree(res.Terms); d != 3 {
		t.Errorf("total degree: want 3, got %d", d)
	}
	if got := gopoly.Variables(res.Terms); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("variables: got %v", got)
	}
}
