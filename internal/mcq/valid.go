package mcq

import (
	"context"
	"errors"

	"github.com/edubot/edubot/internal/locale"
)

// DefaultMaxAttempts allows one retry after a malformed bundle. A model that
// forgot a language block usually produces it on the next call.
const DefaultMaxAttempts = 2

// Result is the outcome of GenerateValid. Record is nil on failure.
type Result struct {
	Record   *Record
	Attempts int
	Err      error
}

// OK reports whether a record was produced.
func (r Result) OK() bool { return r.Record != nil }

// GenerateValid calls gen until it yields a record or maxAttempts is spent.
// Gateway failures end the loop at once since the gateway already retries
// its transport; extraction, parse and retryable validation failures are
// tried again. maxAttempts below 1 is treated as 1.
func GenerateValid(ctx context.Context, gen Generator, lang locale.Language, maxAttempts int) Result {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var res Result
	for res.Attempts < maxAttempts {
		res.Attempts++
		rec, err := gen.Generate(ctx, lang)
		if err == nil {
			res.Record = rec
			res.Err = nil
			return res
		}
		res.Err = err

		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return res
}

func retryable(err error) bool {
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		return false
	}
	switch genErr.Kind {
	case FailureExtraction, FailureParse:
		return true
	case FailureValidation:
		var verr *ValidationError
		return errors.As(genErr.Err, &verr) && verr.Retryable
	default:
		return false
	}
}
