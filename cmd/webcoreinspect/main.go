// Command webcoreinspect parses an HTML document, runs the CSS selection
// and cascade engine over it, and prints the resulting element tree
// alongside each element's computed style. It is the driver loop that
// exercises htmltree.ParseDocument and css.StyleTree end to end, the
// repo's equivalent of a one-shot document_create / hubbub_parser_create /
// select_style pipeline.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/webcore-engine/webcore/css"
	"github.com/webcore-engine/webcore/dom"
	"github.com/webcore-engine/webcore/htmltree"
)

func main() {
	app := &cli.App{
		Name:  "webcoreinspect",
		Usage: "parse an HTML file and dump its DOM tree with computed styles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the HTML file to parse",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "stylesheet",
				Aliases: []string{"s"},
				Usage:   "path to an additional author stylesheet (may be repeated)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log parse errors and diagnostics at debug level",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "webcoreinspect:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := zap.NewNop()
	if c.Bool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
	}
	defer logger.Sync()

	htmlPath := c.String("file")
	src, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", htmlPath, err)
	}

	docID := uuid.New()
	logger.Debug("parsing document", zap.String("doc_id", docID.String()), zap.String("path", htmlPath))

	var parseErrors int
	doc := htmltree.ParseDocument(
		strings.NewReader(string(src)),
		htmltree.WithLogger(logger),
		htmltree.WithErrorCallback(func(line, col int, code htmltree.ParseErrorCode) {
			parseErrors++
			logger.Debug("parse error", zap.Int("line", line), zap.Int("col", col), zap.String("code", code.String()))
		}),
	)
	if parseErrors > 0 {
		fmt.Fprintf(os.Stderr, "webcoreinspect: %d parse error(s) recovered\n", parseErrors)
	}

	tree := css.NewStyleTree()
	for _, path := range c.StringSlice("stylesheet") {
		cssSrc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading stylesheet %s: %w", path, err)
		}
		tree.AddStylesheet(string(cssSrc))
	}
	styled := tree.BuildStyleTree(doc)

	printStyledNode(styled, 0)
	return nil
}

func printStyledNode(sn *css.StyledNode, depth int) {
	if sn == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch sn.Node.NodeType() {
	case dom.ElementNode:
		el := (*dom.Element)(sn.Node)
		fmt.Printf("%s<%s> display=%s\n", indent, el.LocalName(), sn.GetDisplay())
		if sn.Style != nil {
			for _, prop := range []string{"color", "background-color", "font-size"} {
				if v := sn.Style.GetComputedStyleProperty(prop); v != "" {
					fmt.Printf("%s  %s: %s\n", indent, prop, v)
				}
			}
		}
	case dom.TextNode:
		text := strings.TrimSpace(sn.Node.NodeValue())
		if text != "" {
			fmt.Printf("%s%q\n", indent, text)
		}
	}
	for _, child := range sn.Children {
		printStyledNode(child, depth+1)
	}
}
