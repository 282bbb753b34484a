package expectfail

import (
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/internal/config"
	"Inskape/expectfail/internal/encode"
	"Inskape/expectfail/internal/global"
	"Inskape/expectfail/internal/logging"
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	tracer = otel.Tracer(global.Scope("verifier"))
	meter  = otel.Meter(global.Scope("verifier"))
)

var (
	passCounter      metric.Int64Counter
	mismatchCounter  metric.Int64Counter
	rethrowCounter   metric.Int64Counter
	noFailureCounter metric.Int64Counter
)

func init() {
	var err error
	passCounter, err = meter.Int64Counter("verify.pass", metric.WithDescription("The number of verifications that matched the expected failure"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
	mismatchCounter, err = meter.Int64Counter("verify.mismatch", metric.WithDescription("The number of verifications that found an unexpected failure"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
	rethrowCounter, err = meter.Int64Counter("verify.rethrow", metric.WithDescription("The number of assertion failures passed through unchanged"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
	noFailureCounter, err = meter.Int64Counter("verify.nofailure", metric.WithDescription("The number of verifications where the test body did not fail"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
}

type outcome string

const (
	outcomePass      outcome = "pass"
	outcomeMismatch  outcome = "mismatch"
	outcomeRethrow   outcome = "rethrow"
	outcomeNoFailure outcome = "nofailure"
	outcomeInvalid   outcome = "invalid"
)

// Verifier checks captured failures against a Spec. It holds no state
// between calls and is safe for concurrent use.
type Verifier struct {
	logger   *zap.Logger
	maxDepth int
}

type VerifierOption func(*Verifier)

// WithLogger sets the logger outcomes are written to.
func WithLogger(logger *zap.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithMaxChainDepth bounds the number of failures rendered from a cause chain.
func WithMaxChainDepth(depth int) VerifierOption {
	return func(v *Verifier) {
		if depth > 0 {
			v.maxDepth = depth
		}
	}
}

// NewVerifier creates a Verifier. Without WithLogger it does not log.
func NewVerifier(opts ...VerifierOption) *Verifier {
	v := &Verifier{maxDepth: global.DefaultMaxChainDepth}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	return v
}

// NewVerifierFromConfig builds a Verifier logging through the process logger.
func NewVerifierFromConfig(cfg config.Config) *Verifier {
	return NewVerifier(
		WithLogger(logging.Named("verifier")),
		WithMaxChainDepth(cfg.MaxChainDepth),
	)
}

var defaultVerifier = sync.OnceValue(func() *Verifier {
	cfg, err := config.FromEnv()
	if err != nil {
		cfg = config.Default()
	}
	return NewVerifierFromConfig(cfg)
})

// Verify checks captured against spec with the default Verifier.
func Verify(ctx context.Context, spec Spec, tc TestContext, captured error) error {
	return defaultVerifier().Verify(ctx, spec, tc, captured)
}

// Verify returns nil when captured is the failure spec expects.
//
// A nil captured yields a *NoFailureError. Assertion failures are returned
// unchanged whatever the expected kind. Any other unexpected failure yields
// a *MismatchError.
func (v *Verifier) Verify(ctx context.Context, spec Spec, tc TestContext, captured error) error {
	ctx, span := tracer.Start(ctx, "Verify", trace.WithAttributes(
		attribute.String("test.class", tc.QualifiedClassName),
		attribute.String("test.name", tc.TestName),
		attribute.String("expected", spec.String()),
	))
	defer span.End()

	res, err := v.verify(spec, tc, captured)

	v.record(ctx, res, spec, tc, captured)
	span.SetAttributes(attribute.String("outcome", string(res)))
	if err != nil {
		span.SetStatus(codes.Error, string(res))
	}
	return err
}

func (v *Verifier) verify(spec Spec, tc TestContext, captured error) (outcome, error) {
	if spec.kind == nil {
		return outcomeInvalid, exception.ErrNilKind()
	}

	if captured == nil {
		return outcomeNoFailure, &NoFailureError{
			Test:     tc,
			Expected: spec.kind,
			message:  spec.NoFailureMessage(tc),
		}
	}

	if _, ok := captured.(exception.AssertionFailure); ok {
		return outcomeRethrow, captured
	}

	actual := reflect.TypeOf(captured)
	if spec.allowDerived {
		if actual.AssignableTo(spec.kind) {
			return outcomePass, nil
		}
	} else {
		if agg, ok := captured.(*exception.Aggregate); ok && agg != nil && containsExact(agg, spec.kind) {
			return outcomePass, nil
		}
		if actual == spec.kind {
			return outcomePass, nil
		}
	}

	return outcomeMismatch, &MismatchError{
		Test:     tc,
		Actual:   actual,
		Expected: spec.kind,
		Chain:    renderChain(captured, v.maxDepth),
		captured: captured,
	}
}

func containsExact(agg *exception.Aggregate, kind reflect.Type) bool {
	for _, err := range agg.Errors() {
		if reflect.TypeOf(err) == kind {
			return true
		}
	}
	return false
}

func (v *Verifier) record(ctx context.Context, res outcome, spec Spec, tc TestContext, captured error) {
	switch res {
	case outcomePass:
		passCounter.Add(ctx, 1)
	case outcomeMismatch:
		mismatchCounter.Add(ctx, 1)
	case outcomeRethrow:
		rethrowCounter.Add(ctx, 1)
	case outcomeNoFailure:
		noFailureCounter.Add(ctx, 1)
	}

	level := zap.DebugLevel
	if res != outcomePass {
		level = zap.InfoLevel
	}
	if ce := v.logger.Check(level, "verified expected failure"); ce != nil {
		fields := []zap.Field{
			zap.String("verification", encode.ID(uuid.New())),
			zap.String("test", tc.QualifiedClassName+"."+tc.TestName),
			zap.Stringer("expected", spec),
			zap.String("outcome", string(res)),
		}
		if captured != nil {
			fields = append(fields, zap.String("actual", TypeName(reflect.TypeOf(captured))))
		}
		ce.Write(fields...)
	}
}
