// Copyright 2024 The CircLang Authors
// This file is part of CircLang.
//
// CircLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// circc is a command-line front end for the CIRC expression parser. It
// lexes and parses an expression from a file or from the --expr flag and
// renders tokens, the syntax tree, or just the verdict.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/circlang/go-circ/lang/lexer"
	"github.com/circlang/go-circ/lang/parser"
	"github.com/circlang/go-circ/lang/token"
)

var (
	exprFlag = cli.StringFlag{
		Name:  "expr, e",
		Usage: "parse the given expression instead of reading a file",
	}

	tokensCommand = cli.Command{
		Action:    dumpTokens,
		Name:      "tokens",
		Usage:     "Print the token stream of an expression",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{exprFlag},
	}
	astCommand = cli.Command{
		Action:    dumpAST,
		Name:      "ast",
		Usage:     "Print the syntax tree of an expression",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{exprFlag},
	}
	checkCommand = cli.Command{
		Action:    check,
		Name:      "check",
		Usage:     "Parse an expression and report success or the first error",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{exprFlag},
	}
)

var app = cli.NewApp()

func init() {
	app.Name = "circc"
	app.Usage = "CIRC language expression tool"
	app.Commands = []cli.Command{
		tokensCommand,
		astCommand,
		checkCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// input resolves the source text and its display name from the --expr flag
// or the file argument.
func input(ctx *cli.Context) (name, src string, err error) {
	if expr := ctx.String("expr"); expr != "" {
		return "<expr>", expr, nil
	}
	if ctx.NArg() != 1 {
		return "", "", fmt.Errorf("need an input file or --expr")
	}
	name = ctx.Args().First()
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", err
	}
	return name, string(data), nil
}

func dumpTokens(ctx *cli.Context) error {
	name, src, err := input(ctx)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Type", "Literal", "Span"})
	table.SetBorder(false)
	for _, tok := range lexer.New(name, src).Tokenize() {
		if tok.Type == token.EOF {
			break
		}
		table.Append([]string{tok.Type.String(), tok.Literal, spanRange(tok.Span)})
	}
	table.Render()
	return nil
}

func spanRange(sp token.Span) string {
	return fmt.Sprintf("%d:%d-%d:%d", sp.Start.Line, sp.Start.Column, sp.End.Line, sp.End.Column)
}

func dumpAST(ctx *cli.Context) error {
	name, src, err := input(ctx)
	if err != nil {
		return err
	}
	expr, err := parser.Parse(name, src)
	if err != nil {
		return err
	}
	fmt.Println(expr.String())
	fmt.Println()

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true}
	dumper.Dump(expr)
	return nil
}

func check(ctx *cli.Context) error {
	name, src, err := input(ctx)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(name, src); err != nil {
		color.Red("x %v", err)
		os.Exit(1)
	}
	color.Green("ok %s", name)
	return nil
}
