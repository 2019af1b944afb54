package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/numlab/cmd/numlab/fib"
	"github.com/your-org/numlab/internal/config"
	"github.com/your-org/numlab/internal/fibonacci"
	"github.com/your-org/numlab/internal/sieve"
	"github.com/your-org/numlab/pkg/models"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSieveTen(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "10")
	require.NoError(t, err)

	want := "prime: 2\nprime: 3\nprime: 5\nprime: 7\ntotal number of primes till 10: 4\n"
	assert.Equal(t, want, stdout)
}

func TestSieveDefaultLimit(t *testing.T) {
	stdout, _, err := execute(t, "sieve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, "prime: 97", lines[24])
	assert.Equal(t, "total number of primes till 100: 25", lines[25])
}

func TestSieveBelowTwo(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "1")
	require.NoError(t, err)

	assert.Equal(t, "total number of primes till 1: 0\n", stdout)
}

func TestSieveCountOnlyMultipleLimits(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "--count-only", "100", "1000", "10000")
	require.NoError(t, err)

	want := "total number of primes till 100: 25\n" +
		"total number of primes till 1000: 168\n" +
		"total number of primes till 10000: 1229\n"
	assert.Equal(t, want, stdout)
}

func TestSieveJSON(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "--format", "json", "10")
	require.NoError(t, err)

	var run models.Run
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(stdout, &run))

	assert.Equal(t, models.RunKindSieve, run.Kind)
	assert.Equal(t, int64(10), run.Input)
	assert.Equal(t, []int{2, 3, 5, 7}, run.Primes)
	require.NotNil(t, run.Count)
	assert.Equal(t, 4, *run.Count)
	assert.NotEmpty(t, run.ID)
}

func TestSieveJSONCountOnlyFromConfig(t *testing.T) {
	path := writeConfig(t, "output:\n  format: json\n")

	stdout, _, err := execute(t, "--config", path, "sieve", "--count-only", "1", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(lines[0], &first))
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(lines[1], &second))

	assert.NotContains(t, first, "primes")
	assert.Equal(t, float64(0), first["count"])
	assert.Equal(t, float64(25), second["count"])
}

func TestSieveInvalidArgument(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "10", "ten")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `"ten"`)
	assert.Empty(t, stdout, "nothing is printed when any limit is invalid")
}

func TestSieveLimitAboveConfiguredMax(t *testing.T) {
	path := writeConfig(t, "sieve:\n  max_limit: 1000\n")

	_, _, err := execute(t, "--config", path, "sieve", "1001")
	assert.ErrorIs(t, err, sieve.ErrLimitTooLarge)
}

func TestSieveHugeLimitWithoutConfiguredMax(t *testing.T) {
	path := writeConfig(t, "sieve:\n  max_limit: 0\n")

	stdout, _, err := execute(t, "--config", path, "sieve", "9223372036854775807")
	require.Error(t, err)

	assert.ErrorIs(t, err, sieve.ErrLimitTooLarge)
	assert.Empty(t, stdout)
}

func TestSieveNegativeArgument(t *testing.T) {
	stdout, _, err := execute(t, "sieve", "-5")
	require.Error(t, err)

	assert.ErrorIs(t, err, sieve.ErrNegativeLimit)
	assert.Contains(t, err.Error(), "-5")
	assert.Empty(t, stdout)
}

func TestSieveNegativeAfterDoubleDash(t *testing.T) {
	_, _, err := execute(t, "sieve", "--", "10", "-5")
	assert.ErrorIs(t, err, sieve.ErrNegativeLimit)
}

func TestSieveInvalidFormatFlag(t *testing.T) {
	_, _, err := execute(t, "sieve", "--format", "xml", "10")
	assert.Error(t, err)
}

func TestSieveDefaultLimitFromEnv(t *testing.T) {
	t.Setenv("NUMLAB_SIEVE_DEFAULT_LIMIT", "10")

	stdout, _, err := execute(t, "sieve", "--count-only")
	require.NoError(t, err)

	assert.Equal(t, "total number of primes till 10: 4\n", stdout)
}

func TestSieveStats(t *testing.T) {
	_, stderr, err := execute(t, "sieve", "--count-only", "--stats", "10", "100")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Run Summary")
	assert.Contains(t, stderr, "Runs:         2")
	assert.Contains(t, stderr, "sieve: 2 runs")
}

func TestSieveDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "--log-level", "debug", "--log-format", "json", "sieve", "--count-only", "10")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"sieve finished"`)
	assert.Contains(t, stderr, `"count":4`)
}

func TestFibTen(t *testing.T) {
	stdout, _, err := execute(t, "fib", "10")
	require.NoError(t, err)

	assert.Equal(t, "10th fibonacci number is: 55\n", stdout)
}

func TestFibLargeMemoized(t *testing.T) {
	stdout, _, err := execute(t, "fib", "100")
	require.NoError(t, err)

	assert.Equal(t, "100th fibonacci number is: 354224848179261915075\n", stdout)
}

func TestFibNaive(t *testing.T) {
	stdout, _, err := execute(t, "fib", "--naive", "20")
	require.NoError(t, err)

	assert.Equal(t, "20th fibonacci number is: 6765\n", stdout)
}

func TestFibNaiveAboveLimit(t *testing.T) {
	_, _, err := execute(t, "fib", "--naive", "41")
	assert.ErrorIs(t, err, fibonacci.ErrInputTooLarge)
}

func TestFibNaiveCappedWithoutConfiguredMax(t *testing.T) {
	path := writeConfig(t, "fibonacci:\n  naive_max_n: 0\n")

	_, _, err := execute(t, "--config", path, "fib", "--naive", "94")
	assert.ErrorIs(t, err, fibonacci.ErrInputTooLarge)
}

func TestNaiveMaxNPastUint64Rejected(t *testing.T) {
	path := writeConfig(t, "fibonacci:\n  naive_max_n: 94\n")

	_, _, err := execute(t, "--config", path, "fib", "--naive", "10")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestFibStrategyFromConfig(t *testing.T) {
	path := writeConfig(t, "fibonacci:\n  strategy: naive\n")

	stdout, _, err := execute(t, "--config", path, "fib", "--format", "json", "12")
	require.NoError(t, err)

	var run models.Run
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(stdout, &run))
	assert.Equal(t, "naive", run.Strategy)
	assert.Equal(t, "144", run.Value)
}

func TestFibInvalidArgument(t *testing.T) {
	for _, arg := range []string{"abc", "1.5", "-3"} {
		_, _, err := execute(t, "fib", "--", arg)
		assert.ErrorIs(t, err, fib.ErrNotPositiveInteger, arg)
	}
}

func TestFibNegativeArgument(t *testing.T) {
	stdout, _, err := execute(t, "fib", "-3")
	require.Error(t, err)

	assert.ErrorIs(t, err, fib.ErrNotPositiveInteger)
	assert.Contains(t, err.Error(), `(got "-3")`)
	assert.Empty(t, stdout)
}

func TestFibUnknownFlagStillReported(t *testing.T) {
	_, _, err := execute(t, "fib", "-x", "3")
	require.Error(t, err)

	assert.NotErrorIs(t, err, fib.ErrNotPositiveInteger)
	assert.Contains(t, err.Error(), "unknown shorthand flag")
}

func TestFibRequiresOneArgument(t *testing.T) {
	_, _, err := execute(t, "fib")
	assert.Error(t, err)

	_, _, err = execute(t, "fib", "1", "2")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "sieve")
	assert.Error(t, err)
}

func TestInvalidConfigValue(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, _, err := execute(t, "--config", path, "sieve")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
