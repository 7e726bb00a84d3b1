package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/tempo/syntax"
)

// ParseError is reported by the grammar when the source text does not match.
type ParseError struct {
	Message  string
	Location syntax.Location
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location.From, e.Message)
}

type ExpectedKindGotKind struct {
	Expected syntax.NodeKind
	Got      syntax.NodeKind
	Text     string
	Location syntax.Location
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("expected %s, got %s for %q. %s", e.Expected, e.Got, e.Text, e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []syntax.NodeKind
	Got      syntax.NodeKind
	Text     string
	Location syntax.Location
}

func (e ExpectedOneOfKindGotKind) Error() string {
	var names []string
	for _, kind := range e.Expected {
		names = append(names, kind.String())
	}
	return fmt.Sprintf("expected one of %s, got %s for %q. %s", strings.Join(names, ", "), e.Got, e.Text, e.Location)
}

// MissingChild means a node ended before a required child.
type MissingChild struct {
	Parent   syntax.NodeKind
	Expected string
	Location syntax.Location
}

func (e MissingChild) Error() string {
	return fmt.Sprintf("%s: expected %s but found nothing. %s", e.Parent, e.Expected, e.Location)
}

// UnexpectedNode means a node appeared where its parent allows no further children.
type UnexpectedNode struct {
	Parent   syntax.NodeKind
	Got      syntax.NodeKind
	Text     string
	Location syntax.Location
}

func (e UnexpectedNode) Error() string {
	return fmt.Sprintf("unexpected %s inside %s for %q. %s", e.Got, e.Parent, e.Text, e.Location)
}

type InvalidNumber struct {
	Text     string
	Reason   string
	Location syntax.Location
}

func (e InvalidNumber) Error() string {
	return fmt.Sprintf("failed to parse number %q: %s. %s", e.Text, e.Reason, e.Location)
}

type MissingEntry struct {
	Name string
}

func (e MissingEntry) Error() string {
	return fmt.Sprintf("missing entry function: no top-level binding named %q", e.Name)
}

type DuplicateEntry struct {
	Name     string
	First    syntax.Location
	Location syntax.Location
}

func (e DuplicateEntry) Error() string {
	return fmt.Sprintf("entry function %q bound more than once, first at %s. %s", e.Name, e.First, e.Location)
}

type EntryNotFunction struct {
	Name     string
	Got      string
	Location syntax.Location
}

func (e EntryNotFunction) Error() string {
	return fmt.Sprintf("entry binding %q is not a function, it is a %s. %s", e.Name, e.Got, e.Location)
}

type WrongParameterCount struct {
	Name     string
	Count    int
	Location syntax.Location
}

func (e WrongParameterCount) Error() string {
	return fmt.Sprintf("wrong parameter count: entry function %q takes exactly 1 parameter, found %d. %s", e.Name, e.Count, e.Location)
}

type UndefinedIdentifier struct {
	Name     string
	Location syntax.Location
}

func (e UndefinedIdentifier) Error() string {
	return fmt.Sprintf("undefined identifier %q. %s", e.Name, e.Location)
}

type UnsupportedCallee struct {
	Name     string
	Location syntax.Location
}

func (e UnsupportedCallee) Error() string {
	return fmt.Sprintf("unsupported callee %q. %s", e.Name, e.Location)
}

type WrongArgumentCount struct {
	Name     string
	Expected int
	Got      int
	Location syntax.Location
}

func (e WrongArgumentCount) Error() string {
	return fmt.Sprintf("wrong argument count: %q takes %d arguments, got %d. %s", e.Name, e.Expected, e.Got, e.Location)
}

// Unsupported marks a construct the lowering driver deliberately rejects.
type Unsupported struct {
	What     string
	Location syntax.Location
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("%s. %s", e.What, e.Location)
}

type UnsupportedTarget struct {
	Triple string
}

func (e UnsupportedTarget) Error() string {
	return fmt.Sprintf("unsupported target %q", e.Triple)
}

type ConflictingDeclaration struct {
	Name     string
	Existing string
	Wanted   string
}

func (e ConflictingDeclaration) Error() string {
	return fmt.Sprintf("symbol %q already declared as %s, cannot redeclare as %s", e.Name, e.Existing, e.Wanted)
}

// BackendError carries a failure from the external code generator.
type BackendError struct {
	Command string
	Stderr  string
	Err     error
}

func (e BackendError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Command, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e BackendError) Unwrap() error {
	return e.Err
}
