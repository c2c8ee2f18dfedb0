package style

import (
	"testing"

	"copper/internal/cop"
	"copper/internal/testkit"
)

func only(c cop.Cop) testkit.Case { return testkit.Case{Cops: []cop.Cop{c}} }

func TestFrozenStringLiteralComment(t *testing.T) {
	c := only(FrozenStringLiteralComment{})
	testkit.ExpectOffenses(t, c, "x = 1\n^{} Missing frozen string literal comment.\n")
	testkit.ExpectNoOffenses(t, c, "# frozen_string_literal: true\nx = 1\n")
	testkit.ExpectNoOffenses(t, c, "#!/usr/bin/env ruby\n# encoding: utf-8\n# frozen_string_literal: true\nx = 1\n")
	testkit.ExpectNoOffenses(t, c, "# only a comment\n")
}

func TestFrozenStringLiteralCommentCorrection(t *testing.T) {
	c := only(FrozenStringLiteralComment{})
	testkit.ExpectCorrection(t, c, "x = 1\n", "# frozen_string_literal: true\nx = 1\n")
	testkit.ExpectCorrection(t, c, "#!/usr/bin/env ruby\nx = 1\n", "#!/usr/bin/env ruby\n# frozen_string_literal: true\nx = 1\n")
	testkit.ExpectCorrection(t, c, "# encoding: utf-8\nx = 1\n", "# encoding: utf-8\n# frozen_string_literal: true\nx = 1\n")
}

func TestFrozenStringLiteralCommentIsUnsafe(t *testing.T) {
	c := only(FrozenStringLiteralComment{})
	c.Autocorrect = cop.AutocorrectSafe
	diags, out := testkit.Run(t, c, "x = 1\n")
	if out != "x = 1\n" {
		t.Fatalf("safe autocorrect must not insert the comment, got %q", out)
	}
	if len(diags) != 1 || diags[0].Corrected {
		t.Fatalf("diags = %+v", diags)
	}
}

func TestFrozenStringLiteralAlwaysTrue(t *testing.T) {
	c := only(FrozenStringLiteralComment{})
	c.Config = "Style/FrozenStringLiteralComment:\n  EnforcedStyle: always_true\n"
	testkit.ExpectOffenses(t, c, "# frozen_string_literal: false\n^{} Frozen string literal comment must be set to `true`.\nx = 1\n")
}

func TestStringLiterals(t *testing.T) {
	c := only(StringLiterals{})
	testkit.ExpectOffenses(t, c, "x = \"abc\"\n    ^ "+msgPreferSingle+"\n")
	testkit.ExpectNoOffenses(t, c, "x = 'abc'\ny = \"it's\"\nz = \"a\\n\"\nw = \"#{x}\"\nv = \"\\#@x\"\n")
	testkit.ExpectCorrection(t, c, "x = \"abc\"\n", "x = 'abc'\n")
}

func TestStringLiteralsDoubleQuotes(t *testing.T) {
	c := only(StringLiterals{})
	c.Config = "Style/StringLiterals:\n  EnforcedStyle: double_quotes\n"
	testkit.ExpectOffenses(t, c, "x = 'abc'\n    ^ "+msgPreferDouble+"\n")
	testkit.ExpectNoOffenses(t, c, "x = \"abc\"\ny = 'say \"hi\"'\n")
	testkit.ExpectCorrection(t, c, "x = 'abc'\n", "x = \"abc\"\n")
}
