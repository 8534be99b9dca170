package restoration

import (
	"regexp"
	"strings"

	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/iost-studio/contractkit/logging"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrTransformLimit indicates binary operator wrappers remained after the maximum number of restoration passes.
var ErrTransformLimit = errors.New("transform limit exceeded")

// Grouping markers wrapped around a restored expression which is itself an operand, a callee or a unary operand.
// They are private use runes so the narrow pattern, which refuses `(` and `,`, still matches across them.
const (
	groupOpen  = "\uE000"
	groupClose = "\uE001"
)

// Restorer undoes the instrumentation applied to deployed contract source. A Restorer compiles its patterns once and
// is safe for concurrent use, provided event subscriptions happen before the first restoration.
type Restorer struct {
	// config describes the instrumentation names and convergence bounds.
	config Config

	// counterPattern matches a counter increment statement, capturing the increment.
	counterPattern *regexp.Regexp
	// spreadPattern matches a spread wrapper around an argument without calls or commas.
	spreadPattern *regexp.Regexp
	// narrowPattern matches a binary operator wrapper whose operands contain no calls or commas.
	narrowPattern *regexp.Regexp
	// greedyMemberPattern matches a binary operator wrapper followed by a member access, with unrestricted operands.
	greedyMemberPattern *regexp.Regexp
	// greedyPattern matches a binary operator wrapper with unrestricted operands.
	greedyPattern *regexp.Regexp

	// logger describes the Restorer's log object that can be used to log important events
	logger *logging.Logger

	// Events describes the event system for the Restorer.
	Events RestorerEvents
}

// Result describes the outcome of a restoration.
type Result struct {
	// Source is the restored source text.
	Source string
	// RemovedCounters is the number of counter increment statements removed.
	RemovedCounters int
	// TotalIncrement is the sum of the increments of the removed counter statements.
	TotalIncrement decimal.Decimal
	// Iterations is the number of binary operator passes performed.
	Iterations int
	// FallbackEngaged indicates whether the greedy fallback patterns were applied.
	FallbackEngaged bool
}

// NewRestorer creates a Restorer for the provided configuration.
// Returns an error if the configuration is invalid.
func NewRestorer(config Config) (*Restorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	binop := regexp.QuoteMeta(config.BinaryOpName)
	return &Restorer{
		config:              config,
		counterPattern:      regexp.MustCompile(regexp.QuoteMeta(config.CounterName) + `\.incr\(([0-9]*\.?[0-9]+)\)[;,]`),
		spreadPattern:       regexp.MustCompile(regexp.QuoteMeta(config.SpreadName) + `\(([^(,]*)\)`),
		narrowPattern:       regexp.MustCompile(binop + `\(([^(,]*),{1} ([^(,]*),{1} '([^(,]*)'\)`),
		greedyMemberPattern: regexp.MustCompile(binop + `\((.*),{1} (.*),{1} '(.*)'\)\.`),
		greedyPattern:       regexp.MustCompile(binop + `\((.*),{1} (.*),{1} '(.*)'\)`),
		logger:              logging.GlobalLogger.NewSubLogger("module", logging.RESTORATION_SERVICE),
	}, nil
}

// Config returns the configuration of the Restorer.
func (r *Restorer) Config() Config {
	return r.config
}

// Restore removes counter increments, template tags and spread wrappers from instrumented source and rewrites binary
// operator wrappers back into infix expressions, innermost first.
// Returns the restored source and a report, or an error of kind ErrTransformLimit if wrappers remain after the
// configured number of passes. No partial result is returned on failure.
func (r *Restorer) Restore(source string) (*Result, error) {
	result := &Result{TotalIncrement: decimal.Zero}
	text := source

	// Remove counter increments, summing what they metered
	for _, match := range r.counterPattern.FindAllStringSubmatch(text, -1) {
		increment, err := decimal.NewFromString(match[1])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid counter increment '%s'", match[1])
		}
		result.TotalIncrement = result.TotalIncrement.Add(increment)
		result.RemovedCounters++
	}
	text = r.counterPattern.ReplaceAllString(text, "")

	// Remove template tags and unwrap spread arguments
	text = strings.ReplaceAll(text, r.config.TemplateTagName, "")
	text = r.spreadPattern.ReplaceAllString(text, "${1}")

	// Grouping markers already present in the source cannot be told apart from ours
	open, close := groupOpen, groupClose
	if strings.Contains(source, groupOpen) || strings.Contains(source, groupClose) {
		open, close = "(", ")"
	}

	attempts := 0
	for strings.Contains(text, r.config.BinaryOpName) {
		if attempts > r.config.GreedyAfterIterations {
			if !result.FallbackEngaged {
				result.FallbackEngaged = true
				r.logger.Warn("Binary operator restoration did not converge after ", attempts,
					" passes, applying greedy patterns")
				err := r.Events.FallbackEngaged.Publish(FallbackEngagedEvent{
					Restorer:  r,
					Iteration: attempts,
					Remaining: strings.Count(text, r.config.BinaryOpName),
				})
				if err != nil {
					return nil, errors.WithStack(err)
				}
			}
			text = r.greedyMemberPattern.ReplaceAllString(text, "(${1} ${3} ${2}).")
			text = r.greedyPattern.ReplaceAllString(text, "(${1} ${3} ${2})")

			if attempts > r.config.MaxIterations {
				return nil, types.NewContractError(ErrTransformLimit, nil,
					"exceeded max attempt times: wrappers remain after %d passes", attempts)
			}
		}

		text = r.replaceNarrow(text, open, close)
		attempts++
		r.logger.Trace("Binary operator restoration pass ", attempts, " complete")
	}

	if open == groupOpen {
		text = strings.NewReplacer(groupOpen, "(", groupClose, ")").Replace(text)
	}
	result.Source = text
	result.Iterations = attempts
	return result, nil
}

// replaceNarrow rewrites every narrow binary operator wrapper into its infix form. A rewritten expression is wrapped
// in the open and close markers when it is an operand of an enclosing wrapper, the target of a member access or call,
// or the operand of a unary operator.
func (r *Restorer) replaceNarrow(text string, open string, close string) string {
	matches := r.narrowPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		sb.WriteString(text[last:start])

		infix := text[m[2]:m[3]] + " " + text[m[6]:m[7]] + " " + text[m[4]:m[5]]
		if r.needsGrouping(text[:start], text[end:]) {
			infix = open + infix + close
		}
		sb.WriteString(infix)
		last = end
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// needsGrouping determines whether an infix expression replacing a wrapper call must be parenthesized, given the
// text before and after the call.
func (r *Restorer) needsGrouping(before string, after string) bool {
	if strings.HasSuffix(before, r.config.BinaryOpName+"(") {
		return true
	}
	if before != "" && strings.ContainsRune("!~-+", rune(before[len(before)-1])) {
		return true
	}
	if endsWithUnaryKeyword(before) {
		return true
	}
	return strings.HasPrefix(after, ", '") || strings.HasPrefix(after, ".") ||
		strings.HasPrefix(after, "[") || strings.HasPrefix(after, "(")
}

// unaryKeywords are the word operators which bind tighter than any binary operator.
var unaryKeywords = []string{"typeof", "void", "delete", "await"}

// endsWithUnaryKeyword reports whether text, ignoring trailing whitespace, ends in a unary keyword as a whole word.
func endsWithUnaryKeyword(text string) bool {
	text = strings.TrimRight(text, " \t\r\n")
	for _, keyword := range unaryKeywords {
		if !strings.HasSuffix(text, keyword) {
			continue
		}
		rest := text[:len(text)-len(keyword)]
		if rest == "" || !isIdentifierByte(rest[len(rest)-1]) {
			return true
		}
	}
	return false
}

// isIdentifierByte reports whether b can continue an identifier.
func isIdentifierByte(b byte) bool {
	return b == '_' || b == '$' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Restore restores instrumented source using a Restorer for the provided configuration.
// Returns the restored source, or an error if the configuration is invalid or restoration fails.
func Restore(source string, config Config) (string, error) {
	restorer, err := NewRestorer(config)
	if err != nil {
		return "", err
	}
	result, err := restorer.Restore(source)
	if err != nil {
		return "", err
	}
	return result.Source, nil
}
