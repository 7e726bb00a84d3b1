package main

import (
	goerrors "errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/tempo/reader"
	"github.com/pontaoski/tempo/syntax"
)

var errNoSource = goerrors.New("expected exactly one source file")

func readSource(path string) (*syntax.Source, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return syntax.NewSource(path, string(data)), nil
}

func loadSettings(c *cli.Context) (settings, tempoModule, error) {
	doc, err := loadModule(c.String("config"), c.IsSet("config"))
	if err != nil {
		return settings{}, doc, err
	}
	s, err := doc.settings(c.String("target"))
	return s, doc, err
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func compileAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errNoSource
	}
	path := c.Args().First()

	src, err := readSource(path)
	if err != nil {
		return err
	}
	s, _, err := loadSettings(c)
	if err != nil {
		return err
	}

	if c.Bool("dump-ast") || c.Bool("dump-ir") {
		module, program, err := compileModule(src, s)
		if c.Bool("dump-ast") && program != nil {
			repr.New(c.App.Writer).Println(program)
		}
		if err != nil {
			return err
		}
		if c.Bool("dump-ir") {
			fmt.Fprint(c.App.Writer, module.String())
		}
		return nil
	}

	obj, err := compileObject(src, s)
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = stem(path) + ".o"
	}
	if err := ioutil.WriteFile(out, obj, 0644); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "compiled %s to %s\n", path, out)
	return nil
}

func initAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return goerrors.New("no module name provided")
	}
	path := c.String("config")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := writeModule(path, tempoModule{Package: name}); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "created %s\n", path)
	return nil
}

func buildAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errNoSource
	}
	path := c.Args().First()

	src, err := readSource(path)
	if err != nil {
		return err
	}
	s, doc, err := loadSettings(c)
	if err != nil {
		return err
	}

	obj, err := compileObject(src, s)
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = doc.Output
	}
	if out == "" {
		out = doc.Package
	}
	if out == "" {
		out = stem(path)
	}
	if err := link(s, obj, out, false); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "built %s\n", out)
	return nil
}

func runAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return goerrors.New("expected a source file and an integer argument")
	}
	path := c.Args().Get(0)
	arg, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", c.Args().Get(1), err)
	}

	src, err := readSource(path)
	if err != nil {
		return err
	}
	s, _, err := loadSettings(c)
	if err != nil {
		return err
	}

	result, err := runProgram(src, s, arg)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, result)
	return nil
}

// runProgram compiles src, links it as a shared library and calls its entry
// point with arg.
func runProgram(src *syntax.Source, s settings, arg int64) (int64, error) {
	obj, err := compileObject(src, s)
	if err != nil {
		return 0, err
	}

	dir, err := ioutil.TempDir("", "tempo-run")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	lib := filepath.Join(dir, "libprogram.so")
	if err := link(s, obj, lib, true); err != nil {
		return 0, err
	}

	entry, err := reader.Open(lib, s.symbol)
	if err != nil {
		return 0, err
	}
	defer entry.Close()

	return entry.Call(arg), nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "tempo",
		Usage:     "tempo compiler",
		ArgsUsage: "<source file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the object to `FILE`",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "target triple, defaults to the host",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: moduleFile,
				Usage: "module configuration file",
			},
			&cli.BoolFlag{
				Name:  "dump-ast",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "dump-ir",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Value: false,
				Usage: "print errors with a stack trace",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.Bool("verbose"))
			return nil
		},
		Action: compileAction,
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "create a module configuration file",
				ArgsUsage: "<package>",
				Action:    initAction,
			},
			{
				Name:      "build",
				Usage:     "compile and link an executable",
				ArgsUsage: "<source file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
					},
				},
				Action: buildAction,
			},
			{
				Name:      "run",
				Usage:     "compile, load and call the entry point",
				ArgsUsage: "<source file> <integer>",
				Action:    runAction,
			},
		},
	}
}

func main() {
	app := newApp()
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		if c.Bool("trace") {
			fmt.Fprintln(os.Stderr, tracerr.SprintSourceColor(err))
		} else {
			fmt.Fprintf(os.Stderr, "tempo: %s\n", err)
		}
		os.Exit(1)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tempo: %s\n", err)
		os.Exit(1)
	}
}
