package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/lmorg/readline"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/corvatic/cxpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, varsfile string
		nl, echo               bool
		given                  [][2]string
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting verb (default a+bI notation)")
	flag.StringVar(&varsfile, "vars", "", "YAML file of name: expression variable definitions")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	b := newBindings()
	if varsfile != "" {
		if err := b.loadYAML(varsfile); err != nil {
			log.Fatal(err)
		}
	}
	for _, d := range given {
		if err := b.define(d[0], d[1]); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			a, err := cxpr.Compile(arg, b.vars...)
			if err != nil {
				log.Fatal(err)
			}
			show(a, echo, verb)
		}
		return
	}

	in, tty := input(inname)
	if tty {
		repl(b, echo, verb)
		return
	}
	if nl {
		scan := bufio.NewScanner(in)
		for scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			if line == "" {
				continue
			}
			a, err := cxpr.Compile(line, b.vars...)
			if err != nil {
				log.Fatal(err)
			}
			show(a, echo, verb)
		}
		if err := scan.Err(); err != nil {
			log.Fatal(err)
		}
		return
	}
	src, err := io.ReadAll(in)
	if err != nil {
		log.Fatal(err)
	}
	a, err := cxpr.Compile(string(src), b.vars...)
	if err != nil {
		log.Fatal(err)
	}
	show(a, echo, verb)
}

// repl runs an interactive session. The last result is bound to the
// variable ans for subsequent lines.
func repl(b *bindings, echo bool, verb string) {
	ans := b.bind("ans")
	rline := readline.NewInstance()
	rline.SetPrompt("cxpr> ")
	for {
		line, err := rline.Readline()
		if err != nil {
			fmt.Println(err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		a, err := cxpr.Compile(line, b.vars...)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", a)
		}
		*ans = a.Eval()
		if verb != "" {
			fmt.Printf(verb+"\n", *ans)
		} else {
			fmt.Println(cxpr.FormatComplex(*ans))
		}
	}
}

func show(a *cxpr.Expr, echo bool, verb string) {
	if echo {
		fmt.Printf("%v : ", a)
	}
	r := a.Eval()
	if verb != "" {
		fmt.Printf(verb+"\n", r)
	} else {
		fmt.Println(cxpr.FormatComplex(r))
	}
}

// input opens the expression source and reports whether it is an
// interactive terminal.
func input(inname string) (io.Reader, bool) {
	if inname != "" && inname != "-" {
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		return f, false
	}
	tty := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return os.Stdin, tty
}

// bindings is the ordered variable table the CLI compiles against. Each
// definition's value is itself an expression evaluated against the
// definitions before it.
type bindings struct {
	vars  []cxpr.Variable
	store map[string]*complex128
}

func newBindings() *bindings {
	return &bindings{store: make(map[string]*complex128)}
}

// bind ensures storage for name and returns it.
func (b *bindings) bind(name string) *complex128 {
	if p, ok := b.store[name]; ok {
		return p
	}
	p := new(complex128)
	b.store[name] = p
	b.vars = append(b.vars, cxpr.Variable{Name: name, Addr: p})
	return p
}

func (b *bindings) define(name, src string) error {
	a, err := cxpr.Compile(src, b.vars...)
	if err != nil {
		return err
	}
	*b.bind(name) = a.Eval()
	return nil
}

func (b *bindings) loadYAML(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	var defs map[string]string
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return err
	}
	names := make([]string, 0, len(defs))
	for k := range defs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := b.define(k, defs[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return nil
}
