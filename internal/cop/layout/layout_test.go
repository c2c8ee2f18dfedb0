package layout

import (
	"testing"

	"copper/internal/cop"
	"copper/internal/testkit"
)

func only(c cop.Cop) testkit.Case { return testkit.Case{Cops: []cop.Cop{c}} }

func TestTrailingWhitespace(t *testing.T) {
	testkit.ExpectOffenses(t, only(TrailingWhitespace{}), "x = 1  \n     ^ Trailing whitespace detected.\ny = 2\nz = 3\t\n     ^ Trailing whitespace detected.\n")
	testkit.ExpectNoOffenses(t, only(TrailingWhitespace{}), "x = 1\n\ny = 2\n")
	testkit.ExpectCorrection(t, only(TrailingWhitespace{}), "x = 1  \r\ny = 2\t\n", "x = 1\r\ny = 2\n")
}

func TestTrailingWhitespaceStopsAtEnd(t *testing.T) {
	testkit.ExpectNoOffenses(t, only(TrailingWhitespace{}), "x = 1\n__END__\ndata   \n")
}

func TestLineLength(t *testing.T) {
	c := only(LineLength{})
	c.Config = "Layout/LineLength:\n  Max: 10\n"
	testkit.ExpectOffenses(t, c, "x = 'aaaaaaaaaa'\n          ^ Line is too long. [16/10]\ny = 1\n")
	testkit.ExpectNoOffenses(t, c, "# see https://example.com/aaaaaaaaaaaaaaaa\n")

	c.Config = "Layout/LineLength:\n  Max: 10\n  AllowURI: false\n"
	testkit.ExpectOffenses(t, c, "# see https://example.com/aaaaaaaaaaaaaaaa\n          ^ Line is too long. [42/10]\n")
}

func TestLineLengthCountsCharacters(t *testing.T) {
	c := only(LineLength{})
	c.Config = "Layout/LineLength:\n  Max: 6\n"
	// шесть символов, двенадцать байт
	testkit.ExpectNoOffenses(t, c, "ффффф1\n")
	testkit.ExpectOffenses(t, c, "фффффф1\n            ^ Line is too long. [7/6]\n")
}

func TestSpaceAfterComma(t *testing.T) {
	c := only(SpaceAfterComma{})
	testkit.ExpectOffenses(t, c, "foo(1,2)\n     ^ Space missing after comma.\n")
	testkit.ExpectNoOffenses(t, c, "foo(1, 2)\nx = \"a,b\" # c,d\ny = [1,\n  2]\nz = /e,f/\n")
	testkit.ExpectCorrection(t, c, "foo(a,b,c)\n", "foo(a, b, c)\n")
}

func TestSpaceAfterCommaInsideInterpolation(t *testing.T) {
	testkit.ExpectOffenses(t, only(SpaceAfterComma{}), "x = \"a,#{foo(1,2)}\"\n              ^ Space missing after comma.\n")
}

func TestSpaceAfterCommaSkipsHeredoc(t *testing.T) {
	testkit.ExpectNoOffenses(t, only(SpaceAfterComma{}), "x = <<~EOS\n  a,b\nEOS\n")
}

func TestTrailingEmptyLines(t *testing.T) {
	c := only(TrailingEmptyLines{})
	testkit.ExpectOffenses(t, c, "x = 1\n\n^{} 2 trailing blank lines detected.\n\n")
	testkit.ExpectNoOffenses(t, c, "x = 1\n")
	testkit.ExpectNoOffenses(t, c, "")
	testkit.ExpectCorrection(t, c, "x = 1", "x = 1\n")
	testkit.ExpectCorrection(t, c, "x = 1\n\n\n", "x = 1\n")
}

func TestTrailingEmptyLinesMissingNewline(t *testing.T) {
	diags, _ := testkit.Run(t, only(TrailingEmptyLines{}), "x = 1")
	if len(diags) != 1 {
		t.Fatalf("diags = %+v", diags)
	}
	d := diags[0]
	if d.Message != "Final newline missing." || d.Location.Line != 1 || d.Location.Column != 0 {
		t.Fatalf("diag = %+v", d)
	}
}

func TestEmptyLines(t *testing.T) {
	c := only(EmptyLines{})
	testkit.ExpectOffenses(t, c, "x = 1\n\n\n^{} Extra blank line detected.\ny = 2\n")
	testkit.ExpectNoOffenses(t, c, "x = 1\n\ny = 2\n")
	testkit.ExpectNoOffenses(t, c, "x = <<~EOS\n  a\n\n\n  b\nEOS\n")
	testkit.ExpectCorrection(t, c, "x = 1\n\n\n\ny = 2\n", "x = 1\n\ny = 2\n")
}
