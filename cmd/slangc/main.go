package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sagarpatel/slanguage/codegen"
	"github.com/sagarpatel/slanguage/frontend"
	"github.com/sagarpatel/slanguage/internal/slangdebug"
	"github.com/sagarpatel/slanguage/source"
	"github.com/urfave/cli"
)

func readSourceFile(path string) (*source.File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return source.NewFile(path, string(buf)), nil
}

// compile runs the lex -> parse -> codegen pipeline over file and returns
// the serialized IR, or a non-nil error describing the first fatal
// diagnostic encountered
func compile(file *source.File, verbose bool) (string, error) {
	p := frontend.NewParser(file)

	mod, msg := p.Parse()
	if msg != nil {
		return "", errors.New(msg.Make(true))
	}

	if verbose {
		fmt.Println("#######################")
		fmt.Println("##        AST        ##")
		fmt.Println("#######################")
		fmt.Println()
		fmt.Println(slangdebug.StringifyModule(mod))
		fmt.Println()
	}

	gen := codegen.New(mod.Name, file)

	ir, msg := gen.Generate(mod)
	if msg != nil {
		return "", errors.New(msg.Make(true))
	}

	return ir, nil
}

func run(c *cli.Context) error {
	if c.Bool("h") {
		cli.ShowAppHelp(c)
		os.Exit(1)
	}

	args := c.Args()
	if len(args) != 1 {
		cli.ShowAppHelp(c)
		os.Exit(1)
	}

	file, err := readSourceFile(args[0])
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	ir, err := compile(file, c.Bool("v"))
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	outputPath := c.String("r")
	if outputPath == "" {
		outputPath = "output.ll"
	}

	if err := os.WriteFile(outputPath, []byte(ir), 0644); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if c.Bool("e") {
		fmt.Println(ir)
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "slangc"
	app.Usage = "compile a Slanguage source file to textual LLVM IR"
	app.HideHelp = true
	app.ArgsUsage = "FILE"

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "h", Usage: "print usage and exit"},
		cli.StringFlag{Name: "r", Value: "output.ll", Usage: "output filename"},
		cli.BoolFlag{Name: "e", Usage: "also print IR to standard output"},
		cli.BoolFlag{Name: "v", Usage: "enable verbose debug output"},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
