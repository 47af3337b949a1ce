// Command hoot-event-gen generates dispatcher glue for event types.
//
// It scans Go files for struct type declarations carrying a hoot:event
// comment directive and writes a sibling <file>.hoot.go containing, for each
// annotated type, its catalog definition plus typed subscribe and emit
// helpers:
//
//	// hoot:event
//	// Damage is dealt whenever something hits something else.
//	type Damage struct {
//		Amount int
//	}
//
// produces
//
//	var DamageDef = hoot.Describe[Damage]()
//	func onDamage(d *hoot.Dispatcher, h *hoot.Handle, fn hoot.Handler[Damage]) bool
//	func emitDamage(d *hoot.Dispatcher, ev *Damage) bool
//
// Usage:
//
//	hoot-event-gen -path ./internal/game
//	hoot-event-gen -path events.go -export
//
// The -export flag generates exported helpers (OnDamage, EmitDamage)
// instead, even when the event type itself is unexported.
package main

import (
	"bytes"
	"flag"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-openapi/swag"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"mvdan.cc/gofumpt/format"
)

const (
	directive  = "hoot:event"
	hootImport = "github.com/casualjim/hoot"
	genSuffix  = ".hoot.go"
)

// osExit is swapped out in tests.
var osExit = os.Exit

var log = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.Stamp,
}).With().Timestamp().Logger()

func main() {
	pathFlag := flag.String("path", ".", "file or directory to scan for "+directive+" directives")
	exportFlag := flag.Bool("export", false, "export generated helpers for unexported event types")
	flag.Parse()

	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelInfo}),
	))

	info, err := os.Stat(*pathFlag)
	if err != nil {
		log.Error().Err(err).Str("path", *pathFlag).Msg("Error accessing path")
		osExit(1)
		return
	}

	if !info.IsDir() {
		if err := processGoFile(*pathFlag, *exportFlag); err != nil {
			osExit(1)
		}
		return
	}

	err = filepath.WalkDir(*pathFlag, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") || strings.HasSuffix(path, genSuffix) {
			return nil
		}
		return processGoFile(path, *exportFlag)
	})
	if err != nil {
		osExit(1)
	}
}

// eventTypeInfo captures one annotated struct type declaration.
type eventTypeInfo struct {
	name          string
	comments      []*ast.Comment
	exportHelpers bool
}

// collectEvents returns the struct types in the file that carry the
// hoot:event directive. The directive line itself is stripped from the
// comments carried over to the generated declarations.
func collectEvents(fileAST *ast.File, exportHelpers bool) []eventTypeInfo {
	var events []eventTypeInfo

	for _, decl := range fileAST.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE || genDecl.Doc == nil {
			continue
		}

		var annotated bool
		var comments []*ast.Comment
		for _, comment := range genDecl.Doc.List {
			if strings.Contains(comment.Text, directive) {
				annotated = true
				continue
			}
			comments = append(comments, comment)
		}
		if !annotated {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := typeSpec.Type.(*ast.StructType); !ok {
				continue
			}
			events = append(events, eventTypeInfo{
				name:          typeSpec.Name.Name,
				comments:      comments,
				exportHelpers: exportHelpers,
			})
		}
	}

	return events
}

func (ev eventTypeInfo) helperName(prefix string) string {
	if ev.exportHelpers {
		return swag.ToGoName(prefix + " " + ev.name)
	}
	return prefix + swag.ToGoName(ev.name)
}

func (ev eventTypeInfo) defName() string {
	if ev.exportHelpers {
		return swag.ToGoName(ev.name) + "Def"
	}
	return ev.name + "Def"
}

func hootSel(name string) *ast.SelectorExpr {
	return &ast.SelectorExpr{X: ast.NewIdent("hoot"), Sel: ast.NewIdent(name)}
}

// createEventDefAST builds: var <X>Def = hoot.Describe[X]()
func createEventDefAST(ev eventTypeInfo) ast.Decl {
	decl := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names: []*ast.Ident{ast.NewIdent(ev.defName())},
				Values: []ast.Expr{
					&ast.CallExpr{
						Fun: &ast.IndexExpr{
							X:     hootSel("Describe"),
							Index: ast.NewIdent(ev.name),
						},
					},
				},
			},
		},
	}
	if len(ev.comments) > 0 {
		decl.Doc = &ast.CommentGroup{List: ev.comments}
	}
	return decl
}

// createOnFuncAST builds:
// func On<X>(d *hoot.Dispatcher, h *hoot.Handle, fn hoot.Handler[X]) bool
func createOnFuncAST(ev eventTypeInfo) ast.Decl {
	return &ast.FuncDecl{
		Name: ast.NewIdent(ev.helperName("on")),
		Type: &ast.FuncType{
			Params: &ast.FieldList{List: []*ast.Field{
				{
					Names: []*ast.Ident{ast.NewIdent("d")},
					Type:  &ast.StarExpr{X: hootSel("Dispatcher")},
				},
				{
					Names: []*ast.Ident{ast.NewIdent("h")},
					Type:  &ast.StarExpr{X: hootSel("Handle")},
				},
				{
					Names: []*ast.Ident{ast.NewIdent("fn")},
					Type: &ast.IndexExpr{
						X:     hootSel("Handler"),
						Index: ast.NewIdent(ev.name),
					},
				},
			}},
			Results: &ast.FieldList{List: []*ast.Field{
				{Type: ast.NewIdent("bool")},
			}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{
				&ast.CallExpr{
					Fun:  hootSel("Subscribe"),
					Args: []ast.Expr{ast.NewIdent("d"), ast.NewIdent("h"), ast.NewIdent("fn")},
				},
			}},
		}},
	}
}

// createEmitFuncAST builds:
// func Emit<X>(d *hoot.Dispatcher, ev *X) bool
func createEmitFuncAST(ev eventTypeInfo) ast.Decl {
	return &ast.FuncDecl{
		Name: ast.NewIdent(ev.helperName("emit")),
		Type: &ast.FuncType{
			Params: &ast.FieldList{List: []*ast.Field{
				{
					Names: []*ast.Ident{ast.NewIdent("d")},
					Type:  &ast.StarExpr{X: hootSel("Dispatcher")},
				},
				{
					Names: []*ast.Ident{ast.NewIdent("ev")},
					Type:  &ast.StarExpr{X: ast.NewIdent(ev.name)},
				},
			}},
			Results: &ast.FieldList{List: []*ast.Field{
				{Type: ast.NewIdent("bool")},
			}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{
				&ast.CallExpr{
					Fun:  hootSel("Emit"),
					Args: []ast.Expr{ast.NewIdent("d"), ast.NewIdent("ev")},
				},
			}},
		}},
	}
}

// createEventsFile assembles the generated file: the hoot import followed by
// a definition variable and the two helpers per event type.
func createEventsFile(pkgName string, events []eventTypeInfo) *ast.File {
	file := &ast.File{
		Name: ast.NewIdent(pkgName),
		Decls: []ast.Decl{
			&ast.GenDecl{
				Tok: token.IMPORT,
				Specs: []ast.Spec{
					&ast.ImportSpec{
						Path: &ast.BasicLit{Kind: token.STRING, Value: `"` + hootImport + `"`},
					},
				},
			},
		},
	}

	for _, ev := range events {
		file.Decls = append(file.Decls,
			createEventDefAST(ev),
			createOnFuncAST(ev),
			createEmitFuncAST(ev),
		)
	}

	return file
}

// processGoFile generates <file>.hoot.go next to path when the file contains
// annotated event types. Files without the directive produce no output.
func processGoFile(path string, exportHelpers bool) error {
	fset := token.NewFileSet()
	fileAST, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error parsing file")
		return err
	}

	events := collectEvents(fileAST, exportHelpers)
	if len(events) == 0 {
		return nil
	}

	generated := createEventsFile(fileAST.Name.Name, events)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by hoot-event-gen. DO NOT EDIT.\n\n")
	if err := printer.Fprint(&buf, fset, generated); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error printing generated code")
		return err
	}

	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Error formatting generated code")
		return err
	}

	outPath := strings.TrimSuffix(path, ".go") + genSuffix
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		log.Error().Err(err).Str("file", outPath).Msg("Error writing generated file")
		return err
	}

	log.Info().Str("file", outPath).Msg("Generated file")
	return nil
}
