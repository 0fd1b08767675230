package predicate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/internal/config"
)

// Environment variables set for an Exec predicate.
const (
	EnvH           = "HOC_H"
	EnvHGW         = "HOC_H_GW"
	EnvUnit        = "HOC_UNIT"
	EnvFlooded     = "HOC_FLOODED"
	EnvParamPrefix = "HOC_PARAM_"
)

// DefaultRejectExitCode is the exit status that rejects a candidate when
// Exec.RejectExitCode is zero.
const DefaultRejectExitCode = config.DefaultRejectExitCode

// waitDelay bounds how long a cancelled command may keep its output open.
const waitDelay = time.Second

// ErrCommandFailed is returned when the command exits with a status that is
// neither 0 nor the reject code, or cannot be started at all.
var ErrCommandFailed = errors.New("predicate command failed")

// Exec runs an external command for every candidate.
//
// The command sees the candidate in HOC_H, HOC_H_GW, HOC_UNIT and
// HOC_FLOODED, and each forwarded parameter as HOC_PARAM_<NAME>. Exit status
// 0 accepts the height and RejectExitCode rejects it. Any other status
// aborts the crawl.
type Exec struct {
	// Command is the program to run. It is looked up in PATH.
	Command string

	// Args are passed to Command.
	Args []string

	// Env adds variables to the inherited environment.
	Env map[string]string

	// RejectExitCode is the exit status meaning "invalid height".
	// Zero selects DefaultRejectExitCode.
	RejectExitCode int

	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

var _ crawler.Predicate = (*Exec)(nil)

// Check implements crawler.Predicate.
func (e *Exec) Check(ctx context.Context, c crawler.Candidate) (crawler.Verdict, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.CommandContext(ctx, e.Command, e.Args...) //nolint:gosec // The command comes from the user's own job file or flags
	cmd.Env = append(os.Environ(), e.environ(c)...)

	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("running predicate command",
		"command", e.Command,
		"h", c.H,
		slog.Group("env", envAttrs(e.Env)...),
	)

	err := cmd.Run()
	if err == nil {
		return crawler.Accepted, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == e.rejectCode() {
			return 0, fmt.Errorf("%w: %s exited with %d", crawler.ErrInvalidCandidate, e.Command, exitErr.ExitCode())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = exitErr.Error()
		}
		return 0, fmt.Errorf("%w: %s at %s: %s", ErrCommandFailed, e.Command, c.H, msg)
	}
	return 0, fmt.Errorf("%w: %w", ErrCommandFailed, err)
}

// String returns the command line.
func (e *Exec) String() string {
	return strings.TrimSpace("exec " + e.Command + " " + strings.Join(e.Args, " "))
}

func (e *Exec) rejectCode() int {
	if e.RejectExitCode == 0 {
		return DefaultRejectExitCode
	}
	return e.RejectExitCode
}

// environ returns the variables describing c, in a stable order.
func (e *Exec) environ(c crawler.Candidate) []string {
	env := []string{
		EnvH + "=" + formatMagnitude(c.H.Magnitude()),
		EnvUnit + "=" + string(c.H.Unit()),
		EnvFlooded + "=" + strconv.FormatBool(c.Flooded),
	}
	if c.Flooded {
		env = append(env, EnvHGW+"="+formatMagnitude(c.HGW.Magnitude()))
	}

	for _, k := range slices.Sorted(maps.Keys(e.Env)) {
		env = append(env, k+"="+e.Env[k])
	}
	for _, k := range slices.Sorted(maps.Keys(c.Params)) {
		env = append(env, EnvParamPrefix+ParamEnvName(k)+"="+fmt.Sprint(c.Params[k]))
	}
	return env
}

// ParamEnvName turns a parameter name into the suffix used after
// HOC_PARAM_: upper case, with every other rune than a letter or digit
// replaced by an underscore.
func ParamEnvName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
}

func formatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func envAttrs(env map[string]string) []any {
	attrs := make([]any, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		attrs = append(attrs, slog.String(k, env[k]))
	}
	return attrs
}
