package evaluator

import (
	"strings"
	"testing"
)

func TestArrayConstructor(t *testing.T) {
	source := `var a = new Array(5);
console.log(a.length);
var b = new Array();
console.log(b.length);`
	expectOutput(t, source, "5\n0\n")
}

func TestArrayFill(t *testing.T) {
	source := `var a = new Array(3);
a.fill(123);
console.log(a);`
	expectOutput(t, source, "[123, 123, 123]\n")
}

func TestArrayPushPop(t *testing.T) {
	source := `var a = [];
a.push(1);
a.push(2, 3);
console.log(a);
console.log(a.pop());
console.log(a);
var empty = [];
console.log(empty.pop() === undefined);`
	expectOutput(t, source, "[1, 2, 3]\n3\n[1, 2]\ntrue\n")
}

func TestArrayForEach(t *testing.T) {
	source := `var a = ["hello", "from", "forEach"];
a.forEach((s) => console.log(s));`
	expectOutput(t, source, "hello\nfrom\nforEach\n")
}

func TestArrayMap(t *testing.T) {
	source := `var b = [1, 2, 3];
var c = b.map((n => n + 1));
console.log(b);
console.log(c);`
	expectOutput(t, source, "[1, 2, 3]\n[2, 3, 4]\n")
}

func TestArrayFilter(t *testing.T) {
	source := `var d = [true, false, true, true, false];
console.log(d.filter((v) => v));`
	expectOutput(t, source, "[true, true, true]\n")
}

func TestArrayReduce(t *testing.T) {
	source := `var b = [1, 2, 3, 4, 5];
console.log(b.reduce((prev, current) => prev + current, 0));
console.log(b.reduce((prev, current) => prev + current));`
	expectOutput(t, source, "15\n15\n")
}

func TestArrayReduceEmptyWithoutInitial(t *testing.T) {
	source := `try { [].reduce((a, b) => a + b); }
catch (e) { console.log(e.name); }`
	expectOutput(t, source, "TypeError\n")
}

func TestArrayFrom(t *testing.T) {
	source := `var a = [1, 2, 3, 4];
var b = Array.from(a);
b.push(5);
console.log(a.length);
console.log(b.length);
var c = Array.from(a, (x) => x + 1);
console.log(c);`
	expectOutput(t, source, "4\n5\n[2, 3, 4, 5]\n")
}

func TestCallbackErrorsPropagate(t *testing.T) {
	source := `try {
	[1, 2].forEach(() => { throw new Error("inner"); });
} catch (e) { console.log(e.message); }`
	expectOutput(t, source, "inner\n")
}

func TestMath(t *testing.T) {
	tests := []struct {
		expression string
		expected   string
	}{
		{"Math.abs(-3)", "3"},
		{"Math.abs(3)", "3"},
		{"Math.sqrt(16)", "4"},
		{"Math.round(2.4)", "2"},
		{"Math.round(2.5)", "3"},
		{"Math.round(-2.5)", "-2"},
		{"Math.floor(2.9)", "2"},
		{"Math.ceil(2.1)", "3"},
	}

	for _, tt := range tests {
		expectOutput(t, "console.log("+tt.expression+");", tt.expected+"\n")
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		expression string
		expected   string
	}{
		{`parseInt("42")`, "42"},
		{`parseInt("42abc")`, "42"},
		{`parseInt("-7")`, "-7"},
		{`parseInt("ff", 16)`, "255"},
		{`parseInt("0x1a")`, "26"},
		{`parseInt("101", 2)`, "5"},
		{`parseInt("abc")`, "NaN"},
		{`parseInt("")`, "NaN"},
	}

	for _, tt := range tests {
		expectOutput(t, "console.log("+tt.expression+");", tt.expected+"\n")
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		expression string
		expected   string
	}{
		{`parseFloat("3.25")`, "3.25"},
		{`parseFloat("3.25rem")`, "3.25"},
		{`parseFloat("-0.5")`, "-0.5"},
		{`parseFloat("1e2")`, "100"},
		{`parseFloat("abc")`, "NaN"},
	}

	for _, tt := range tests {
		expectOutput(t, "console.log("+tt.expression+");", tt.expected+"\n")
	}
}

func TestErrorConstructors(t *testing.T) {
	source := `var e = new Error("plain");
console.log(e.name);
console.log(e.message);
var r = new ReferenceError("ref");
console.log(r.name);
var ty = new TypeError("type");
console.log(ty.name);
console.log(ty.toString());`
	expectOutput(t, source, "Error\nplain\nReferenceError\nTypeError\nTypeError: type\n")
}

func TestErrorCalledWithoutNew(t *testing.T) {
	source := `var e = Error("direct");
console.log(e.message);
console.log(e.toString());`
	expectOutput(t, source, "direct\nError: direct\n")
}

func TestObjectToString(t *testing.T) {
	source := `function Point(x) { this.x = x; }
var p = new Point(1);
console.log(p.toString());
console.log(({}).toString());`
	expectOutput(t, source, "[object Point]\n[object Object]\n")
}

func TestUndefinedGlobal(t *testing.T) {
	expectOutput(t, "console.log(undefined);", "undefined\n")
}

func TestConsoleError(t *testing.T) {
	out, errOut := runSource(t, `console.error("to stderr");`)
	if out != "" {
		t.Errorf("unexpected stdout: %q", out)
	}
	if errOut != "to stderr\n" {
		t.Errorf("stderr wrong: %q", errOut)
	}
}

func TestDBUnknownDriver(t *testing.T) {
	source := `try { db.open("nosuchdb", "dsn"); }
catch (e) { console.log(e.name); }`
	expectOutput(t, source, "TypeError\n")
}

func TestDBInvalidHandle(t *testing.T) {
	source := `try { db.query(99, "select 1"); }
catch (e) { console.log(e.name); }`
	expectOutput(t, source, "Error\n")
}

func TestDBArgumentValidation(t *testing.T) {
	out, errOut := runSource(t, `try { db.open(1, 2); } catch (e) { console.log(e.message); }`)
	if errOut != "" {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
	if !strings.Contains(out, "driver name") {
		t.Errorf("message wrong: %q", out)
	}
}
