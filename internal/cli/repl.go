package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/source"
	"github.com/hyperjump/askdoc/pkg/utils"
)

// Prompts written by the REPL.
const (
	DocumentPrompt = "Enter the path to your document: "
	WebPrompt      = "Enter the URL of the web page: "
	SourcePrompt   = "Enter a file path or URL: "
	QuestionPrompt = "Question: "
)

// Session is the part of a session the REPL drives.
type Session interface {
	Load(ctx context.Context, src string) (*models.Document, error)
	Ask(ctx context.Context, question string) (*models.Answer, error)
}

// REPL reads a source and then questions, one per line.
type REPL struct {
	session      Session
	in           *bufio.Scanner
	out          io.Writer
	sourcePrompt string
	format       OutputFormat
	logger       *zap.Logger
	last         *models.Answer
}

// Option configures a REPL.
type Option func(*REPL)

// WithSourcePrompt sets the prompt shown when asking for a source.
func WithSourcePrompt(p string) Option {
	return func(r *REPL) { r.sourcePrompt = p }
}

// WithFormat sets the answer output format.
func WithFormat(f OutputFormat) Option {
	return func(r *REPL) { r.format = f }
}

// WithLogger sets a logger for diagnostics. User-facing text always goes to the writer.
func WithLogger(l *zap.Logger) Option {
	return func(r *REPL) { r.logger = l }
}

// NewREPL creates a REPL over in and out.
func NewREPL(s Session, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		session:      s,
		in:           bufio.NewScanner(in),
		out:          out,
		sourcePrompt: DocumentPrompt,
		format:       OutputText,
	}
	r.in.Buffer(make([]byte, 64*1024), 1024*1024)
	for _, opt := range opts {
		opt(r)
	}
	r.logger = utils.OrNop(r.logger)
	return r
}

// Run loads preset (or prompts for a source when preset is empty or fails to
// load) and then answers questions until "exit" or end of input.
func (r *REPL) Run(ctx context.Context, preset string) error {
	loaded := false
	if preset = strings.TrimSpace(preset); preset != "" {
		loaded = r.load(ctx, preset)
	}
	for !loaded {
		fmt.Fprint(r.out, r.sourcePrompt)
		line, ok := r.readLine()
		if !ok || isExit(line) {
			fmt.Fprintln(r.out, "Exiting...")
			return r.in.Err()
		}
		if line == "" {
			continue
		}
		loaded = r.load(ctx, line)
	}

	fmt.Fprintln(r.out, "\nAsk questions about your document (type 'exit' to quit):")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, QuestionPrompt)
		line, ok := r.readLine()
		if !ok || isExit(line) {
			fmt.Fprintln(r.out, "Exiting...")
			return r.in.Err()
		}
		switch {
		case line == "":
			fmt.Fprintln(r.out, "Please enter a question.")
		case line == ":context":
			WriteContext(r.out, r.last)
		case strings.HasPrefix(line, ":load"):
			src := strings.TrimSpace(strings.TrimPrefix(line, ":load"))
			if src == "" {
				fmt.Fprintln(r.out, "Usage: :load <path or URL>")
				continue
			}
			if r.load(ctx, src) {
				r.last = nil
			}
		default:
			r.ask(ctx, line)
		}
	}
}

func (r *REPL) load(ctx context.Context, src string) bool {
	doc, err := r.session.Load(ctx, src)
	if err != nil {
		if source.IsLoadFailure(err) {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		} else {
			fmt.Fprintf(r.out, "Error processing document: %v\n", err)
		}
		r.logger.Debug("load failed", zap.String("source", src), zap.Error(err))
		return false
	}
	r.logger.Debug("source loaded", zap.String("source", doc.Source), zap.String("id", doc.ID))
	return true
}

func (r *REPL) ask(ctx context.Context, question string) {
	ans, err := r.session.Ask(ctx, question)
	if err != nil {
		fmt.Fprintf(r.out, "Error answering question: %v\n", err)
		return
	}
	if ans.Ready() {
		r.last = ans
	}
	if err := WriteAnswer(r.out, ans, r.format); err != nil {
		r.logger.Warn("failed to write answer", zap.Error(err))
	}
}

func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func isExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "exit")
}
