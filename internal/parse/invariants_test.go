package parse_test

import (
	"context"
	"testing"

	"copper/internal/parse"
	"copper/internal/testkit"
)

var invariantSources = map[string]string{
	"empty":      "",
	"assignment": "x = 1\n",
	"strings":    "a = \"x#{b, c}y\" # tail\nb = %w[a b]\nc = :\"s#{1}\"\nd = /re,#{x}/\n",
	"heredocs":   "foo(<<~A, <<-B)\n  one #{x}\nA\n  two\n  B\nbar\n",
	"classes":    "module M\n  class C < B\n    def self.x(a, *b, &c)\n      yield a\n    end\n  end\nend\n",
	"data":       "puts DATA.read\n__END__\nraw, data\n",
	"broken":     "def foo(\n  [1,\n",
	"crlf":       "x = 1\r\ny = [1,\r\n 2]\r\n",
	"unicode":    "# комментарий\nимя = 'значение'\n",
}

func TestTreeInvariants(t *testing.T) {
	for name, src := range invariantSources {
		t.Run(name, func(t *testing.T) {
			tree, err := parse.Parse(context.Background(), []byte(src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := testkit.CheckTreeInvariants(tree, []byte(src)); err != nil {
				t.Fatal(err)
			}
		})
	}
}
