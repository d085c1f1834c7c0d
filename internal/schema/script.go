package schema

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gosuri/uiprogress"
)

// statement is one non-blank line of the schema script.
type statement struct {
	Line int
	SQL  string
}

// The vendor script keeps each statement on one line; some are long.
const maxStatementSize = 16 * 1024 * 1024

// readStatements loads path and returns its non-blank lines, trimmed, in
// file order.
func readStatements(path string) ([]statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	defer f.Close()

	var stmts []statement
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxStatementSize)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		stmts = append(stmts, statement{Line: line, SQL: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScript, path, err)
	}
	return stmts, nil
}

// runStatements executes stmts one by one, stopping at the first failure.
func (in *Installer) runStatements(ctx context.Context, e execer, stmts []statement) error {
	step := func() {}
	if in.Progress && len(stmts) > 0 {
		uiprogress.Start()
		bar := uiprogress.AddBar(len(stmts)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Creating schema: "
		})
		defer uiprogress.Stop()
		step = func() { bar.Incr() }
	}

	for _, s := range stmts {
		in.log.Debug().Int("line", s.Line).Str("sql", s.SQL).Msg("executing")
		if _, err := e.ExecContext(ctx, s.SQL); err != nil {
			return &StatementError{Line: s.Line, Statement: s.SQL, Err: err}
		}
		step()
	}
	return nil
}
