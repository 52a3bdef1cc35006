package errors

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocError(t *testing.T) {
	t.Run("message includes code symbol and location", func(t *testing.T) {
		err := NewParseError(ErrCodeParse, "unterminated declaration").
			WithComponent("rmd-button").
			WithLocation("button/src/_mixins.scss", 42)

		assert.Equal(t, "[ERR_PARSE] symbol:rmd-button button/src/_mixins.scss:42 unterminated declaration", err.Error())
	})

	t.Run("cause is unwrapped", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapIO(cause, ErrCodeWorkspace, "failed to copy styles")

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "permission denied")
		assert.False(t, err.Recoverable)
	})

	t.Run("is compares type and code", func(t *testing.T) {
		err := WrapCompile(errors.New("boom"), ErrCodeExampleCompile, "bad example", "rmd-button")
		assert.True(t, errors.Is(err, &DocError{Type: ErrorTypeCompile, Code: ErrCodeExampleCompile}))
		assert.False(t, errors.Is(err, &DocError{Type: ErrorTypeIO, Code: ErrCodeExampleCompile}))
		assert.True(t, IsCompileError(fmt.Errorf("outer: %w", err)))
	})

	t.Run("wrap keeps location", func(t *testing.T) {
		inner := NewParseError(ErrCodeParse, "bad").WithLocation("a.scss", 3).WithComponent("x")
		outer := Wrap(inner, ErrorTypeInternal, ErrCodeInternalError, "parse failed")

		assert.Equal(t, "a.scss", outer.FilePath)
		assert.Equal(t, 3, outer.Line)
		assert.Equal(t, "x", outer.Component)
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrorTypeIO, "", ""))
	})

	t.Run("error context", func(t *testing.T) {
		err := NewReferenceError(ErrCodeUnresolvedRef, "missing").
			WithComponent("rmd-button").
			WithLocation("button/src/_mixins.scss", 7).
			WithContext("kind", "mixin")

		fields := ErrorContext(fmt.Errorf("outer: %w", err))
		assert.Equal(t, "rmd-button", fields["symbol"])
		assert.Equal(t, "button/src/_mixins.scss", fields["file"])
		assert.Equal(t, 7, fields["line"])
		assert.Equal(t, "mixin", fields["kind"])
		assert.Equal(t, string(ErrorTypeReference), fields["type"])
		assert.Equal(t, true, fields["recoverable"])

		assert.Nil(t, ErrorContext(errors.New("plain")))
	})
}

func TestErrorCollector(t *testing.T) {
	t.Run("empty collector has no error", func(t *testing.T) {
		ec := NewErrorCollector()
		assert.NoError(t, ec.Err())
		assert.False(t, ec.HasErrors())
	})

	t.Run("warnings do not fail", func(t *testing.T) {
		ec := NewErrorCollector()
		ec.Add(Diagnostic{Symbol: "a", Target: "b", Severity: ErrorSeverityWarning})

		assert.NoError(t, ec.Err())
		assert.Len(t, ec.Warnings(), 1)
		assert.Empty(t, ec.Errors())
	})

	t.Run("err names every missing target once", func(t *testing.T) {
		ec := NewErrorCollector()
		ec.Add(Diagnostic{Group: "button", Symbol: "rmd-button", Kind: "mixin", Target: "rmd-missing", Severity: ErrorSeverityError})
		ec.Add(Diagnostic{Group: "app-bar", Symbol: "rmd-app-bar", Kind: "mixin", Target: "rmd-missing", Severity: ErrorSeverityError})
		ec.Add(Diagnostic{Group: "app-bar", Symbol: "rmd-app-bar", Kind: "mixin", Target: "rmd-other", Severity: ErrorSeverityError})

		err := ec.Err()
		require.Error(t, err)
		assert.True(t, IsReferenceError(err))
		assert.Contains(t, err.Error(), "`rmd-missing`")
		assert.Contains(t, err.Error(), "`rmd-other`")
	})

	t.Run("diagnostics are ordered regardless of insertion", func(t *testing.T) {
		ec := NewErrorCollector()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ec.Add(Diagnostic{Group: fmt.Sprintf("g%02d", i), Severity: ErrorSeverityError})
			}(i)
		}
		wg.Wait()

		diags := ec.Diagnostics()
		require.Len(t, diags, 20)
		for i := 1; i < len(diags); i++ {
			assert.LessOrEqual(t, diags[i-1].Group, diags[i].Group)
		}
		assert.Equal(t, 20, ec.Count())
	})
}
