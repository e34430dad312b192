package simulated

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/codeclass/internal/executor"
)

type runCase struct {
	name       string
	code       string
	stdin      string
	lang       executor.Language
	wantOutput string
	wantError  string // "" means the result must carry no error
}

func checkRun(t *testing.T, tc runCase) {
	t.Helper()

	got := Run(tc.code, tc.stdin, tc.lang)

	if got.Output != tc.wantOutput {
		t.Errorf("Output = %q, want %q", got.Output, tc.wantOutput)
	}
	switch {
	case tc.wantError == "" && got.Error != nil:
		t.Errorf("Error = %q, want nil", *got.Error)
	case tc.wantError != "" && got.Error == nil:
		t.Errorf("Error = nil, want %q", tc.wantError)
	case tc.wantError != "" && *got.Error != tc.wantError:
		t.Errorf("Error = %q, want %q", *got.Error, tc.wantError)
	}
}

// =========================================================================
// PYTHON
// =========================================================================

var pythonCases = []runCase{
	{
		name:       "double-quoted literal",
		code:       `print("Hello, World!")`,
		wantOutput: "Hello, World!",
	},
	{
		name:       "single-quoted literal",
		code:       `print('hi there')`,
		wantOutput: "hi there",
	},
	{
		name:       "integer literal",
		code:       `print(42)`,
		wantOutput: "42",
	},
	{
		name:       "float literal",
		code:       `print(3.14)`,
		wantOutput: "3.14",
	},
	{
		name:       "name that ParseFloat would accept is still a variable",
		code:       `print(inf)`,
		wantOutput: "[Variable: inf]",
	},
	{
		name:       "unresolved expression",
		code:       `print(x + 1)`,
		wantOutput: "[Variable: x + 1]",
	},
	{
		name:       "several prints joined by newlines",
		code:       "print('a')\nprint(1)\nprint(y)",
		wantOutput: "a\n1\n[Variable: y]",
	},
	{
		name:       "paren inside a string literal",
		code:       `print("a)b")`,
		wantOutput: "a)b",
	},
	{
		name:       "unbalanced call falls back to the first close paren",
		code:       `print(len(x)`,
		wantOutput: "[Variable: len(x]",
	},
	{
		name:       "empty print writes an empty line",
		code:       `print()`,
		wantOutput: "",
	},
	{
		name:      "no print at all",
		code:      `x = 5`,
		wantError: "No output generated. Did you forget to use print()?",
	},
	{
		name:      "print split across lines does not match",
		code:      "print(\n\"x\")",
		wantError: "No output generated. Did you forget to use print()?",
	},
	{
		name:       "empty source",
		code:       "",
		wantOutput: "No code to execute.",
	},
	{
		name:       "whitespace-only source",
		code:       "   \n\t",
		wantOutput: "No code to execute.",
	},
	{
		name:      "unterminated print overrides everything",
		code:      `print("abc"`,
		wantError: "SyntaxError: unexpected EOF while parsing",
	},
	{
		name:      "unterminated print wins over the input banner",
		code:      "x = input(\nprint(",
		stdin:     "Alice",
		wantError: "SyntaxError: unexpected EOF while parsing",
	},
	{
		name:      "input without print",
		code:      `name = input()`,
		wantError: "Your code reads input but doesn't print anything.",
	},
	{
		name:       "input without print still shows the input banner",
		code:       `name = input()`,
		stdin:      "Bob\nCarol",
		wantOutput: "Using input: Bob",
		wantError:  "Your code reads input but doesn't print anything.",
	},
	{
		name:       "print(input()) resolves to stdin",
		code:       `print(input())`,
		stdin:      "Alice",
		wantOutput: "Using input: Alice\nAlice",
	},
	{
		name:       "input() sees trimmed stdin, the banner the raw first line",
		code:       `print(input())`,
		stdin:      "  Alice \r\n",
		wantOutput: "Using input:   Alice \nAlice",
	},
	{
		name:       "leading blank line gives an empty banner",
		code:       `print(input())`,
		stdin:      "\nAlice",
		wantOutput: "Using input: \nAlice",
	},
	{
		name:       "blank stdin leaves input() unresolved",
		code:       `print(input())`,
		stdin:      "   ",
		wantOutput: "[Variable: input()]",
	},
	{
		name:       "banner uses the first stdin line",
		code:       "x = input()\nprint(x)",
		stdin:      "Alice\nBob",
		wantOutput: "Using input: Alice\n[Variable: x]",
	},
}

func TestRunPython(t *testing.T) {
	for _, tc := range pythonCases {
		tc.lang = executor.Python
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestClassifyPrintArg(t *testing.T) {
	tests := []struct {
		arg      string
		stdin    string
		wantKind printArg
		wantText string
	}{
		{`"quoted"`, "", quotedLiteral, "quoted"},
		{` 'spaced' `, "", quotedLiteral, "spaced"},
		{`"mismatched'`, "", unresolved, `[Variable: "mismatched']`},
		{`-7`, "", numericLiteral, "-7"},
		{`1e3`, "", numericLiteral, "1e3"},
		{`0x10`, "", unresolved, "[Variable: 0x10]"},
		{`input()`, "Ann", inputCall, "Ann"},
		{`input()`, "", unresolved, "[Variable: input()]"},
		{`input("name? ")`, "Ann", unresolved, `[Variable: input("name? ")]`},
		{`a * b`, "", unresolved, "[Variable: a * b]"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			kind, text := classifyPrintArg(tt.arg, tt.stdin)
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

// =========================================================================
// JAVA
// =========================================================================

var javaCases = []runCase{
	{
		name:       "println keeps the closing quote",
		code:       `System.out.println("Hi")`,
		wantOutput: `Hi"`,
	},
	{
		name:       "print of an expression",
		code:       `System.out.print(x)`,
		wantOutput: "[Evaluated: x]",
	},
	{
		name:       "statements in a class body",
		code:       "public class Main {\n  public static void main(String[] args) {\n    System.out.println(\"a\");\n    System.out.print(1+2);\n  }\n}",
		wantOutput: "a\"\n[Evaluated: 1+2]",
	},
	{
		name:      "printf is not a print call",
		code:      `System.out.printf("x")`,
		wantError: "No output generated. Did you use System.out.print?",
	},
	{
		name:      "no print",
		code:      `int x = 5;`,
		wantError: "No output generated. Did you use System.out.print?",
	},
}

func TestRunJava(t *testing.T) {
	for _, tc := range javaCases {
		tc.lang = executor.Java
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

// =========================================================================
// C / C++
// =========================================================================

var cCases = []runCase{
	{
		name:       "literal printf",
		code:       `printf("Hello")`,
		lang:       executor.C,
		wantOutput: "Hello",
	},
	{
		name:       "printf inside main",
		code:       "#include <stdio.h>\nint main() {\n  printf(\"Hello, C!\");\n  return 0;\n}",
		lang:       executor.C,
		wantOutput: "Hello, C!",
	},
	{
		name:       "format arguments fall back to the placeholder",
		code:       `int main() { printf("%d", x); }`,
		lang:       executor.C,
		wantOutput: "Output from C/C++ code (simulated)",
	},
	{
		name:      "no printf",
		code:      `int main() { return 0; }`,
		lang:      executor.C,
		wantError: "No output generated. Did you use printf?",
	},
	{
		name:      "cout does not count for c",
		code:      `cout << "Hi"`,
		lang:      executor.C,
		wantError: "No output generated. Did you use printf?",
	},
	{
		name:       "literal cout",
		code:       `cout << "Hi"`,
		lang:       executor.CPP,
		wantOutput: "Hi",
	},
	{
		name:       "chained cout keeps the first literal",
		code:       `std::cout << "Hello" << std::endl;`,
		lang:       executor.CPP,
		wantOutput: "Hello",
	},
	{
		name:       "cout of a variable",
		code:       `cout << x;`,
		lang:       executor.CPP,
		wantOutput: "Output from C/C++ code (simulated)",
	},
	{
		name:      "printf does not count for cpp",
		code:      `printf("x")`,
		lang:      executor.CPP,
		wantError: "No output generated. Did you use cout?",
	},
}

func TestRunCFamily(t *testing.T) {
	for _, tc := range cCases {
		t.Run(string(tc.lang)+"/"+tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

// =========================================================================
// SQL
// =========================================================================

const studentsFixture = "Query executed on students:\n\n" +
	"id | name | value\n" +
	"-----------------\n" +
	"1 | data1 | 100\n" +
	"2 | data2 | 200"

var sqlCases = []runCase{
	{
		name:       "select with table name",
		code:       `SELECT * FROM students`,
		wantOutput: studentsFixture,
	},
	{
		name:       "lowercase select",
		code:       "  select name from students;  ",
		wantOutput: studentsFixture,
	},
	{
		name: "select without from",
		code: `SELECT 1`,
		wantOutput: "Query executed on table:\n\n" +
			"id | name | value\n-----------------\n1 | data1 | 100\n2 | data2 | 200",
	},
	{
		name:       "insert",
		code:       `INSERT INTO t VALUES (1)`,
		wantOutput: "1 row(s) inserted successfully.",
	},
	{
		name:       "update",
		code:       `UPDATE t SET a = 1`,
		wantOutput: "2 row(s) updated successfully.",
	},
	{
		name: "select outranks update",
		code: `UPDATE t SET selected = 1`,
		wantOutput: "Query executed on table:\n\n" +
			"id | name | value\n-----------------\n1 | data1 | 100\n2 | data2 | 200",
	},
	{
		name:       "anything else",
		code:       `DELETE FROM t`,
		wantOutput: "Query executed. No rows affected.",
	},
	{
		name:       "empty query",
		code:       "",
		wantOutput: "Query executed. No rows affected.",
	},
}

func TestRunSQL(t *testing.T) {
	for _, tc := range sqlCases {
		tc.lang = executor.SQL
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

// =========================================================================
// ENGINE
// =========================================================================

func TestRun_UnsupportedLanguage(t *testing.T) {
	checkRun(t, runCase{
		code:      "<h1>hi</h1>",
		lang:      executor.Web,
		wantError: "Unsupported language: web",
	})
}

func TestRun_Deterministic(t *testing.T) {
	all := [][]runCase{pythonCases, javaCases, cCases, sqlCases}
	langs := []executor.Language{executor.Python, executor.Java, "", executor.SQL}

	for i, group := range all {
		for _, tc := range group {
			if langs[i] != "" {
				tc.lang = langs[i]
			}
			first := Run(tc.code, tc.stdin, tc.lang)
			second := Run(tc.code, tc.stdin, tc.lang)

			if first.Output != second.Output || first.ErrorMessage() != second.ErrorMessage() ||
				first.Failed() != second.Failed() {
				t.Errorf("%s/%s: results differ between runs: %+v vs %+v", tc.lang, tc.name, first, second)
			}
		}
	}
}

func TestEngine_Execute(t *testing.T) {
	eng := New()
	req := executor.ExecutionRequest{Code: `print(input())`, Stdin: "Alice", Language: executor.Python}

	res, err := eng.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := Run(req.Code, req.Stdin, req.Language); res.Output != want.Output {
		t.Errorf("Execute() Output = %q, want %q", res.Output, want.Output)
	}
}

func TestEngine_DelayDoesNotChangeResult(t *testing.T) {
	req := executor.ExecutionRequest{Code: `SELECT * FROM students`, Language: executor.SQL}

	immediate, err := New().Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	delayed, err := executor.WithDelay(New(), 10*time.Millisecond).Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("delayed Execute() error = %v", err)
	}

	if immediate.Output != delayed.Output || immediate.Failed() != delayed.Failed() {
		t.Errorf("delayed result %+v differs from immediate %+v", delayed, immediate)
	}
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Execute(ctx, executor.ExecutionRequest{Language: executor.Python}); err == nil {
		t.Fatal("Execute() should return the context error once the caller has gone")
	}
}
