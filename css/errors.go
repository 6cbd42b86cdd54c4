package css

import (
	"fmt"

	"github.com/lukehoban/csscore/internal/clog"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stage tags which layer of the pipeline raised a Diagnostic,
// purely so callers filtering Stylesheet.Errors,
// CssStylesheet.Errors, or Tokenizer.Diagnostics can tell them
// apart; it does not change the recoverable/hard-fail split spec.md
// §7 defines.
type Stage uint8

const (
	StageTokenizer Stage = iota
	StageGrammar
	StageMicrosyntax
	StageSelector
)

func (s Stage) String() string {
	switch s {
	case StageTokenizer:
		return "tokenizer"
	case StageGrammar:
		return "grammar"
	case StageMicrosyntax:
		return "microsyntax"
	case StageSelector:
		return "selector"
	default:
		return "unknown"
	}
}

// Diagnostic is a recoverable parse error: a message plus the source
// location it concerns (spec.md §6 "Error object"). Tokenizer- and
// grammar-level recovery appends Diagnostics and continues; it never
// aborts.
type Diagnostic struct {
	Stage   Stage
	Message string
	Loc     Location
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}

// ParseError is returned by the hard-fail entry points
// (ParseRule, ParseDeclaration, ParseComponentValue) in place of a
// node, per spec.md §4.3 and §7.
type ParseError struct {
	Message string
	Loc     Location
}

func (e *ParseError) Error() string { return e.Message }

// missingToken is the selectors parser's backtracking control signal
// (spec.md §4.5/§9): a production that couldn't match raises it, a
// surrounding `try` scope catches it and rewinds the cursor, and only
// an unhandled missingToken at the selectors entry point surfaces as
// a *ParseError.
type missingToken struct {
	msg string
	loc Location
}

func (m *missingToken) Error() string { return m.msg }

// diagnostics accumulates recoverable errors for one parse and
// mirrors them to an internal/clog.Logger at Debug level, the way
// rupor-github-fb2cng's css.Parser traces recoverable conditions
// through its zap.Logger without failing the overall parse.
type diagnostics struct {
	items []*Diagnostic
	log   *clog.Logger
}

func newDiagnostics(log *clog.Logger) *diagnostics {
	return &diagnostics{log: clogOrNop(log)}
}

func clogOrNop(log *clog.Logger) *clog.Logger {
	if log == nil {
		return clog.New(nil)
	}
	return log
}

func (d *diagnostics) add(stage Stage, loc Location, format string, args ...any) {
	diag := &Diagnostic{Stage: stage, Message: fmt.Sprintf(format, args...), Loc: loc}
	d.items = append(d.items, diag)
	d.log.Debug(diag.Message, zap.String("stage", stage.String()), zap.Int("start", loc.Start), zap.Int("end", loc.End))
}

// err folds every accumulated Diagnostic into a single error via
// multierr.Combine, so callers that just want "if err != nil" don't
// need to walk the slice themselves.
func (d *diagnostics) err() error {
	if len(d.items) == 0 {
		return nil
	}
	errs := make([]error, len(d.items))
	for i, it := range d.items {
		errs[i] = it
	}
	return multierr.Combine(errs...)
}
